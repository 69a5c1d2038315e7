package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/pdl-runtime/decl"
	pdlerrors "github.com/wippyai/pdl-runtime/errors"
	"github.com/wippyai/pdl-runtime/packet"
)

func main() {
	var (
		declFile    = flag.String("decl", "", "TOML declaration file (default: built-in packets)")
		packetName  = flag.String("packet", "Foo", "Packet to decode or encode")
		decodeArg   = flag.String("decode", "", "Hex bytes to decode")
		encodeArg   = flag.String("encode", "", "Value to encode (decimal, 0x hex, or enum variant)")
		asJSON      = flag.Bool("json", false, "Print the decoded packet as JSON")
		list        = flag.Bool("list", false, "List declared packets and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	log := newLogger(*verbose)
	defer func() { _ = log.Sync() }()
	packet.SetLogger(log.Named("packet"))
	decl.SetLogger(log.Named("decl"))

	reg, err := loadRegistry(*declFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: -i requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(reg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *list {
		for _, name := range reg.Names() {
			d, _ := reg.Lookup(name)
			fmt.Println(describe(d))
		}
		return
	}

	if (*decodeArg == "") == (*encodeArg == "") {
		fmt.Fprintln(os.Stderr, "Usage: pdlc [-decl file.toml] [-packet name] -decode <hex> [-json]")
		fmt.Fprintln(os.Stderr, "       pdlc [-decl file.toml] [-packet name] -encode <value>")
		fmt.Fprintln(os.Stderr, "       pdlc [-decl file.toml] -list")
		fmt.Fprintln(os.Stderr, "       pdlc [-decl file.toml] -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(reg, *packetName, *decodeArg, *encodeArg, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		os.Exit(1)
	}
}

func run(reg *decl.Registry, name, decodeArg, encodeArg string, asJSON bool) error {
	var (
		p   packet.Packet
		err error
	)
	if decodeArg != "" {
		p, err = decodeHex(reg, name, decodeArg)
	} else {
		p, err = encodeValue(reg, name, encodeArg)
	}
	if err != nil {
		return err
	}

	if asJSON {
		out, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	fmt.Println(formatPacket(p))
	return nil
}

func loadRegistry(path string) (*decl.Registry, error) {
	if path == "" {
		return decl.Builtin(), nil
	}
	return decl.LoadFile(path)
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			return l
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// errorText expands structured codec errors with their context.
func errorText(err error) string {
	msg := "Error: " + err.Error()
	if e, ok := pdlerrors.As(err); ok {
		switch e.Kind {
		case pdlerrors.KindInvalidLength, pdlerrors.KindInvalidPacket:
			msg += fmt.Sprintf("\n  wanted %d bytes, got %d", e.Wanted, e.Got)
		case pdlerrors.KindConstraintOutOfBounds, pdlerrors.KindInvalidEnumValue:
			msg += fmt.Sprintf("\n  field %s, value %v", e.Path(), e.Value)
		}
	}
	return msg
}

func renderError(err error) string {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return errorStyle.Render(errorText(err))
	}
	return errorText(err)
}
