// toon - TOON codec command line tool
//
// Converts between JSON and TOON:
//
//	toon encode [-f file]    Read JSON, write TOON
//	toon decode [-f file]    Read TOON, write JSON
//
// If no file is given, input is read from stdin. Output goes to stdout.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/paularlott/cli"
	"github.com/paularlott/toon"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "toon",
		Version: version,
		Usage:   "Convert between JSON and TOON",
		Commands: []*cli.Command{
			encodeCommand(),
			decodeCommand(),
		},
	}

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "toon:", err)
		os.Exit(1)
	}
}

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Read JSON and write TOON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "file",
				Aliases:      []string{"f"},
				Usage:        "Input file (default: stdin)",
				DefaultValue: "",
			},
			&cli.IntFlag{
				Name:         "indent",
				Usage:        "Spaces per indentation level",
				DefaultValue: 2,
			},
			&cli.StringFlag{
				Name:         "delimiter",
				Aliases:      []string{"d"},
				Usage:        "Array delimiter: comma, tab or pipe",
				DefaultValue: "comma",
			},
			&cli.StringFlag{
				Name:         "length-marker",
				Usage:        "Prefix placed before array counts, e.g. \"#\"",
				DefaultValue: "",
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			data, err := readInput(cmd.GetString("file"))
			if err != nil {
				return err
			}

			var v interface{}
			if err := json.Unmarshal(data, &v); err != nil {
				return fmt.Errorf("parse JSON: %w", err)
			}

			delimiter, err := delimiterFromName(cmd.GetString("delimiter"))
			if err != nil {
				return err
			}

			out, err := toon.EncodeWithOptions(v, &toon.EncodeOptions{
				Indent:       cmd.GetInt("indent"),
				Delimiter:    delimiter,
				LengthMarker: cmd.GetString("length-marker"),
			})
			if err != nil {
				return err
			}

			fmt.Println(out)
			return nil
		},
	}
}

func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "decode",
		Usage: "Read TOON and write JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:         "file",
				Aliases:      []string{"f"},
				Usage:        "Input file (default: stdin)",
				DefaultValue: "",
			},
			&cli.IntFlag{
				Name:         "indent",
				Usage:        "Spaces per indentation level",
				DefaultValue: 2,
			},
			&cli.BoolFlag{
				Name:         "lenient",
				Usage:        "Tolerate length, blank-line and indentation violations",
				DefaultValue: false,
			},
			&cli.BoolFlag{
				Name:         "compact",
				Usage:        "Emit compact JSON instead of indented",
				DefaultValue: false,
			},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			data, err := readInput(cmd.GetString("file"))
			if err != nil {
				return err
			}

			v, err := toon.DecodeWithOptions(string(data), &toon.DecodeOptions{
				Lenient: cmd.GetBool("lenient"),
				Indent:  cmd.GetInt("indent"),
			})
			if err != nil {
				return err
			}

			var out []byte
			if cmd.GetBool("compact") {
				out, err = json.Marshal(v)
			} else {
				out, err = json.MarshalIndent(v, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}

			fmt.Println(string(out))
			return nil
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func delimiterFromName(name string) (string, error) {
	switch name {
	case "comma", ",":
		return ",", nil
	case "tab", "\t":
		return "\t", nil
	case "pipe", "|":
		return "|", nil
	default:
		return "", fmt.Errorf("unknown delimiter %q (use comma, tab or pipe)", name)
	}
}
