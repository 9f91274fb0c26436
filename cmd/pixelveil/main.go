package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"PixelVeil/pkg/codec"
	"PixelVeil/pkg/container"
	"PixelVeil/pkg/textsteg"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/term"
)

var (
	// Color printers
	infoColor    = color.New(color.FgBlue).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

func printInfo(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", infoColor("[*]"), fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", successColor("[+]"), fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", warningColor("[!]"), fmt.Sprintf(format, args...))
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s %s\n", errorColor("[-]"), fmt.Sprintf(format, args...))
}

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  pixelveil encode      -in <cover image> -out <output image> -msg <text> | -msgfile <file>")
	fmt.Println("  pixelveil decode      -in <image> [-out <file>]")
	fmt.Println("  pixelveil capacity    -in <image>")
	fmt.Println("  pixelveil text-encode -cover <text> -msg <text>")
	fmt.Println("  pixelveil text-decode -text <text>")
	fmt.Println("Run any subcommand with -h for its full flag list.")
}

func main() {
	fmt.Println("PixelVeil v1.0.0")
	fmt.Println("Hide byte payloads in image LSBs and zero-width text")
	fmt.Println("---------------------------------")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	case "capacity":
		err = runCapacity(os.Args[2:])
	case "text-encode":
		err = runTextEncode(os.Args[2:])
	case "text-decode":
		err = runTextDecode(os.Args[2:])
	default:
		printError("Unknown subcommand: %s", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

// resolvePassword returns the password from the flag, or prompts for it
// without echo when -prompt is set.
func resolvePassword(password string, prompt bool) (string, error) {
	if password != "" || !prompt {
		return password, nil
	}
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func compressPayload(payload []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(payload, nil), nil
}

func decompressPayload(payload []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}
	defer dec.Close()
	out, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}
	return out, nil
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "cover image to embed into (required)")
	out := fs.String("out", "", "output image path, lossless format only (required)")
	msg := fs.String("msg", "", "message text to hide")
	msgFile := fs.String("msgfile", "", "file whose bytes to hide (overrides -msg)")
	password := fs.String("password", "", "password for the XOR keystream")
	prompt := fs.Bool("prompt", false, "prompt for the password without echo")
	compress := fs.Bool("compress", false, "zstd-compress the payload before embedding")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fs.PrintDefaults()
		return errors.New("encode requires -in and -out")
	}

	payload := []byte(*msg)
	if *msgFile != "" {
		var err error
		payload, err = os.ReadFile(*msgFile)
		if err != nil {
			return fmt.Errorf("failed to read message file: %w", err)
		}
	}

	pass, err := resolvePassword(*password, *prompt)
	if err != nil {
		return err
	}

	img, format, err := container.ReadImage(*in)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	printInfo("Loaded %s cover image, %dx%d", format, bounds.Dx(), bounds.Dy())

	if *compress {
		compressed, err := compressPayload(payload)
		if err != nil {
			return err
		}
		printInfo("Compressed payload %s -> %s",
			humanize.IBytes(uint64(len(payload))), humanize.IBytes(uint64(len(compressed))))
		payload = compressed
	}

	encoded, err := codec.Encode(img, payload, pass)
	if err != nil {
		var capErr *codec.CapacityError
		if errors.As(err, &capErr) {
			printWarning("This image holds up to %s payload bytes, message needs %s",
				humanize.Comma(int64(capErr.Available)), humanize.Comma(int64(capErr.Required)))
		}
		return err
	}

	registry := container.NewWriterRegistry()
	if err := registry.WriteImage(*out, encoded); err != nil {
		if errors.Is(err, container.ErrLossyOutput) {
			printWarning("Pick a lossless output format instead: %s",
				strings.Join(registry.SupportedOutputFormats(), ", "))
		}
		return err
	}

	printSuccess("Embedded %s of payload into %s", humanize.IBytes(uint64(len(payload))), *out)
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "image to extract from (required)")
	out := fs.String("out", "", "write the payload to this file instead of stdout")
	password := fs.String("password", "", "password for the XOR keystream")
	prompt := fs.Bool("prompt", false, "prompt for the password without echo")
	compress := fs.Bool("compress", false, "zstd-decompress the payload after extraction")
	fs.Parse(args)

	if *in == "" {
		fs.PrintDefaults()
		return errors.New("decode requires -in")
	}

	pass, err := resolvePassword(*password, *prompt)
	if err != nil {
		return err
	}

	img, format, err := container.ReadImage(*in)
	if err != nil {
		return err
	}
	printInfo("Loaded %s image", format)

	payload, err := codec.Decode(img, pass)
	if err != nil {
		return err
	}

	if *compress {
		payload, err = decompressPayload(payload)
		if err != nil {
			return err
		}
	}

	if *out != "" {
		if err := os.WriteFile(*out, payload, 0644); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
		printSuccess("Extracted %s to %s", humanize.IBytes(uint64(len(payload))), *out)
		return nil
	}

	printSuccess("Extracted %s of payload:", humanize.IBytes(uint64(len(payload))))
	fmt.Println(string(payload))
	return nil
}

func runCapacity(args []string) error {
	fs := flag.NewFlagSet("capacity", flag.ExitOnError)
	in := fs.String("in", "", "image to measure (required)")
	fs.Parse(args)

	if *in == "" {
		fs.PrintDefaults()
		return errors.New("capacity requires -in")
	}

	img, format, err := container.ReadImage(*in)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	max := codec.MaxPayloadBytes(bounds.Dx(), bounds.Dy())

	printInfo("%s image, %dx%d pixels", format, bounds.Dx(), bounds.Dy())
	printSuccess("Holds up to %s payload bytes (%s)",
		humanize.Comma(int64(max)), humanize.IBytes(uint64(max)))
	return nil
}

func runTextEncode(args []string) error {
	fs := flag.NewFlagSet("text-encode", flag.ExitOnError)
	cover := fs.String("cover", "", "visible cover text (required)")
	msg := fs.String("msg", "", "message to hide (required)")
	password := fs.String("password", "", "password for the XOR keystream")
	prompt := fs.Bool("prompt", false, "prompt for the password without echo")
	fs.Parse(args)

	if *cover == "" || *msg == "" {
		fs.PrintDefaults()
		return errors.New("text-encode requires -cover and -msg")
	}

	pass, err := resolvePassword(*password, *prompt)
	if err != nil {
		return err
	}

	steg, err := textsteg.EncodeText(*cover, []byte(*msg), pass)
	if err != nil {
		return err
	}

	printSuccess("Hidden %d bytes inside %d visible characters", len(*msg), len([]rune(*cover)))
	fmt.Println(steg)
	return nil
}

func runTextDecode(args []string) error {
	fs := flag.NewFlagSet("text-decode", flag.ExitOnError)
	text := fs.String("text", "", "text to extract from (required)")
	password := fs.String("password", "", "password for the XOR keystream")
	prompt := fs.Bool("prompt", false, "prompt for the password without echo")
	fs.Parse(args)

	if *text == "" {
		fs.PrintDefaults()
		return errors.New("text-decode requires -text")
	}

	pass, err := resolvePassword(*password, *prompt)
	if err != nil {
		return err
	}

	if !textsteg.HasHiddenMessage(*text) {
		return textsteg.ErrNoHiddenMessage
	}

	secret, err := textsteg.DecodeText(*text, pass)
	if err != nil {
		return err
	}

	printSuccess("Recovered %d hidden bytes:", len(secret))
	fmt.Println(string(secret))
	return nil
}
