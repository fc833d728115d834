package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	witcodec "github.com/wippyai/wit-codec"
	"github.com/wippyai/wit-codec/wit"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to wit binary file")
		version     = flag.String("version", witcodec.SchemaVersion, "Expected schema version string")
		debug       = flag.Bool("debug", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: witdump -in <file.wit> [-version string]")
		fmt.Fprintln(os.Stderr, "       witdump -in <file.wit> -i  (interactive mode)")
		os.Exit(1)
	}

	if *debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		wit.SetLogger(logger)
	}

	if *interactive {
		if err := runInteractive(*inFile, *version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(*inFile, *version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(inFile, version string) error {
	data, err := os.ReadFile(inFile)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	d, err := wit.NewDecoder(data, version)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fmt.Printf("File: %s (%d bytes)\n", inFile, len(data))
	fmt.Printf("Version: %s\n", version)

	for !d.Empty() {
		s, err := d.Section()
		if err != nil {
			return fmt.Errorf("section: %w", err)
		}
		fmt.Printf("\n%s section (%d items)\n", s.Kind, s.Count())
		if err := dumpSection(s); err != nil {
			return err
		}
	}
	return nil
}

func dumpSection(s *wit.Section) error {
	switch s.Kind {
	case wit.SectionType:
		types, err := s.Types.Collect()
		if err != nil {
			return err
		}
		for i, ty := range types {
			fmt.Printf("  [%d] %s\n", i, ty)
		}

	case wit.SectionImport:
		imports, err := s.Imports.Collect()
		if err != nil {
			return err
		}
		for i, im := range imports {
			fmt.Printf("  [%d] %s\n", i, im)
		}

	case wit.SectionExport:
		exports, err := s.Exports.Collect()
		if err != nil {
			return err
		}
		for i, ex := range exports {
			fmt.Printf("  [%d] %s\n", i, ex)
		}

	case wit.SectionFunc:
		funcs, err := s.Funcs.Collect()
		if err != nil {
			return err
		}
		for i, fn := range funcs {
			fmt.Printf("  [%d] %s\n", i, fn)
			instrs, err := fn.Instructions().Collect()
			if err != nil {
				return err
			}
			for _, in := range instrs {
				fmt.Printf("        %s\n", in)
			}
		}
	}
	return nil
}
