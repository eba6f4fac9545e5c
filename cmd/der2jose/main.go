package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/regnull/joseecdsa"
)

const Version = "0.1.0"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	app := newApp(os.Stdin, os.Stdout, logger)
	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Error().Err(err).Msg("der2jose failed")
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout io.Writer, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "der2jose",
		Usage:   "Convert ECDSA DER signatures to JWS R||S form",
		Version: Version,
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("DER2JOSE_LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("invalid log level: %w", err)
			}
			logger = logger.Level(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "length",
				Usage: "Print the concatenated signature length for the algorithm",
				Flags: []cli.Flag{algFlag()},
				Action: func(ctx context.Context, c *cli.Command) error {
					length, err := joseecdsa.ResolveLength(c.String("alg"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(stdout, length)
					return err
				},
			},
			{
				Name:  "transcode",
				Usage: "Read DER signature and print it in concatenated form",
				Flags: []cli.Flag{
					algFlag(),
					&cli.StringFlag{
						Name:  "in",
						Usage: "Input file, stdin if not set",
					},
					&cli.StringFlag{
						Name:    "input-encoding",
						Usage:   "Input encoding: hex, base64 or raw",
						Value:   "hex",
						Sources: cli.EnvVars("DER2JOSE_INPUT_ENCODING"),
					},
					&cli.StringFlag{
						Name:    "output-encoding",
						Usage:   "Output encoding: base64url or hex",
						Value:   "base64url",
						Sources: cli.EnvVars("DER2JOSE_OUTPUT_ENCODING"),
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runTranscode(c, stdin, stdout, logger)
				},
			},
		},
	}
}

func algFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "alg",
		Aliases: []string{"a"},
		Usage:   "JWS algorithm: ES256, ES384 or ES512",
		Value:   "ES256",
		Sources: cli.EnvVars("DER2JOSE_ALG"),
	}
}

func runTranscode(c *cli.Command, stdin io.Reader, stdout io.Writer, logger zerolog.Logger) error {
	alg := joseecdsa.ParseAlgorithm(c.String("alg"))
	if !alg.Valid() {
		return fmt.Errorf("%w: %q", joseecdsa.ErrUnsupportedAlgorithm, c.String("alg"))
	}

	var data []byte
	var err error
	if in := c.String("in"); in != "" {
		data, err = os.ReadFile(in)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read signature: %w", err)
	}

	der, err := decodeInput(data, c.String("input-encoding"))
	if err != nil {
		return err
	}
	logger.Debug().Str("alg", alg.String()).Int("der_length", len(der)).Msg("transcoding signature")

	concat, err := alg.Transcode(der)
	if err != nil {
		return err
	}
	if len(concat) != alg.SignatureLength() {
		logger.Warn().
			Int("length", len(concat)).
			Int("expected", alg.SignatureLength()).
			Msg("signature is wider than the curve field size")
	}

	switch c.String("output-encoding") {
	case "base64url":
		_, err = fmt.Fprintln(stdout, base64.RawURLEncoding.EncodeToString(concat))
	case "hex":
		_, err = fmt.Fprintln(stdout, hex.EncodeToString(concat))
	default:
		return fmt.Errorf("unsupported output encoding %q", c.String("output-encoding"))
	}
	return err
}

func decodeInput(data []byte, encoding string) ([]byte, error) {
	switch encoding {
	case "raw":
		return data, nil
	case "hex":
		der, err := hex.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode hex input: %w", err)
		}
		return der, nil
	case "base64":
		der, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 input: %w", err)
		}
		return der, nil
	}
	return nil, fmt.Errorf("unsupported input encoding %q", encoding)
}
