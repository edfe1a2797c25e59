package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulnum/internal/numeral"
	"github.com/jusunglee/hangulnum/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	_ = godotenv.Load()

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, ff.ErrHelp) {
			slog.Error("fatal", "error", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootFlags := ff.NewFlagSet("hangulnum")
	root := &ff.Command{
		Name:      "hangulnum",
		Usage:     "hangulnum <encode|decode|romanize> [FLAGS] ARGS...",
		ShortHelp: "convert between integers and Sino-Korean numerals",
		Flags:     rootFlags,
	}

	encodeFlags := ff.NewFlagSet("encode").SetParent(rootFlags)
	var (
		encZeroChar     = encodeFlags.StringLong("zero-char", "영", "Text returned for zero")
		encKeepSmallOne = encodeFlags.BoolLong("keep-small-one", "Write 일 before 십, 백 and 천")
		encKeepLargeOne = encodeFlags.BoolLong("keep-large-one", "Write 일 before 만, 억, 조 and 경")
		encSpacing      = encodeFlags.BoolLong("spacing", "Separate large-unit groups with a space")
		encNegativeWord = encodeFlags.StringLong("negative-word", "마이너스", "Prefix for negative values")
		encRomanize     = encodeFlags.BoolLong("romanize", "Append the romanized reading")
	)
	encode := &ff.Command{
		Name:      "encode",
		Usage:     "hangulnum encode [FLAGS] [--] VALUE...",
		ShortHelp: "spell integers in Hangul",
		Flags:     encodeFlags,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("encode requires at least one value")
			}
			opts := numeral.EncodeOptions{
				ZeroChar:                    *encZeroChar,
				KeepOneForSmallUnits:        *encKeepSmallOne,
				KeepOneForLargeUnits:        *encKeepLargeOne,
				UseSpacingBetweenLargeUnits: *encSpacing,
				NegativeWord:                *encNegativeWord,
			}
			for _, arg := range args {
				text, err := numeral.Encode(arg, opts)
				if err != nil {
					return fmt.Errorf("encoding %q: %w", arg, err)
				}
				if *encRomanize {
					fmt.Fprintf(stdout, "%s\t%s\n", text, transliteration.Romanize(text))
				} else {
					fmt.Fprintln(stdout, text)
				}
			}
			return nil
		},
	}

	decodeFlags := ff.NewFlagSet("decode").SetParent(rootFlags)
	var (
		decZeroChar     = decodeFlags.StringLong("zero-char", "영", "Extra character accepted as zero")
		decNegativeWord = decodeFlags.StringLong("negative-word", "마이너스", "Prefix marking negative values")
		decOutput       = decodeFlags.StringLong("output", string(numeral.OutputAuto), "Output mode: bigint, string, number or auto")
	)
	decode := &ff.Command{
		Name:      "decode",
		Usage:     "hangulnum decode [FLAGS] TEXT...",
		ShortHelp: "read Hangul numerals back into integers",
		LongHelp:  "Each argument is decoded separately. Quote text that contains spaces.",
		Flags:     decodeFlags,
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("decode requires at least one text")
			}
			mode, err := numeral.ParseOutputMode(*decOutput)
			if err != nil {
				return err
			}
			opts := numeral.DecodeOptions{
				ZeroChar:     *decZeroChar,
				NegativeWord: *decNegativeWord,
				Output:       mode,
			}
			for _, arg := range args {
				value, err := numeral.Decode(arg, opts)
				if err != nil {
					return fmt.Errorf("decoding %q: %w", arg, err)
				}
				fmt.Fprintln(stdout, value)
			}
			return nil
		},
	}

	romanize := &ff.Command{
		Name:      "romanize",
		Usage:     "hangulnum romanize TEXT...",
		ShortHelp: "print the Revised Romanization of Hangul text",
		Flags:     ff.NewFlagSet("romanize").SetParent(rootFlags),
		Exec: func(ctx context.Context, args []string) error {
			fmt.Fprintln(stdout, transliteration.Romanize(strings.Join(args, " ")))
			return nil
		},
	}

	root.Subcommands = []*ff.Command{encode, decode, romanize}

	err := root.ParseAndRun(ctx, args, ff.WithEnvVarPrefix("HANGULNUM"))
	switch {
	case errors.Is(err, ff.ErrHelp), errors.Is(err, ff.ErrNoExec):
		selected := root.GetSelected()
		if selected == nil {
			selected = root
		}
		fmt.Fprintf(stderr, "%s\n", ffhelp.Command(selected))
		return ff.ErrHelp
	case err != nil:
		return err
	}
	return nil
}
