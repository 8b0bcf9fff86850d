package main

import (
	"flag"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/belle/core/font/fontregistry"
	"github.com/npillmayer/belle/core/locate/resources"
	"github.com/npillmayer/belle/engine/document"
	"github.com/npillmayer/belle/engine/thumbnail"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	assets := fs.String("assets", ".", "Asset directory")
	out := fs.String("out", "", "Output file (default stdout)")
	quality := fs.Int("quality", 75, "JPEG quality [1…100]")
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	if err := fs.Parse(args); err != nil {
		return core.WrapError(err, core.EINVALID, "%v", err)
	}
	if err := setup(testconfig.Conf{"assets": *assets, "jpeg-quality": *quality}, *tlevel); err != nil {
		return err
	}
	in := io.Reader(os.Stdin)
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return core.WrapError(err, core.EMISSING, "cannot open document %s", fs.Arg(0))
		}
		defer f.Close()
		in = f
	}
	doc, err := document.Parse(in)
	if err != nil {
		return err
	}
	r := document.NewRenderer(resources.NewDirStore(""), fontregistry.GlobalRegistry())
	page, skipped, err := r.Render(doc)
	if err != nil {
		return err
	}
	if skipped > 0 {
		pterm.Warning.Printfln("%d elements could not be rendered", skipped)
	}
	w, err := output(*out)
	if err != nil {
		return err
	}
	return emit(w, func(w io.Writer) error {
		return document.EncodeJPEG(w, page, gconf.GetInt("jpeg-quality"))
	})
}

func runThumbnail(args []string) error {
	fs := flag.NewFlagSet("thumbnail", flag.ContinueOnError)
	assets := fs.String("assets", ".", "Asset directory")
	key := fs.String("asset", "", "Asset key (required)")
	size := fs.String("size", "", "Thumbnail size WxH (required)")
	label := fs.String("label", "", "Store in cache under this label")
	text := fs.String("text", thumbnail.DefaultText, "Sample text for fonts")
	out := fs.String("out", "", "Output file (default stdout)")
	tlevel := fs.String("trace", "Error", "Trace level [Debug|Info|Error]")
	if err := fs.Parse(args); err != nil {
		return core.WrapError(err, core.EINVALID, "%v", err)
	}
	if *key == "" {
		return core.Error(core.EINVALID, "asset key required")
	}
	dim, err := parseSize(*size)
	if err != nil {
		return err
	}
	if err := setup(testconfig.Conf{"assets": *assets, "thumbnail-text": *text}, *tlevel); err != nil {
		return err
	}
	th := thumbnail.New(resources.NewDirStore(""), fontregistry.GlobalRegistry())
	img, err := th.Generate(*key, dim)
	if err != nil {
		return err
	}
	if *label != "" && *out == "" {
		p, err := th.Store(*label, *key, img)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("thumbnail stored in %s", p)
		return nil
	}
	w, err := output(*out)
	if err != nil {
		return err
	}
	return emit(w, func(w io.Writer) error {
		return th.Encode(w, img)
	})
}

// parseSize parses a thumbnail size of the form "WxH".
func parseSize(s string) (image.Point, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) == 2 {
		w, errw := strconv.Atoi(parts[0])
		h, errh := strconv.Atoi(parts[1])
		if errw == nil && errh == nil && w > 0 && h > 0 {
			return image.Pt(w, h), nil
		}
	}
	return image.Point{}, core.Error(core.EINVALID, "size must be WxH, have %q", s)
}

// output opens the output file, or stdout if name is empty.
func output(name string) (io.WriteCloser, error) {
	if name == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, core.Error(core.EINVALID, "refusing to write JPEG to a terminal, use -out or a redirection")
		}
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, core.WrapError(err, core.EIO, "cannot create %s", name)
	}
	return f, nil
}

// emit encodes to w and closes it. A failing close is reported unless
// encoding failed before.
func emit(w io.WriteCloser, encode func(io.Writer) error) error {
	err := encode(w)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = core.WrapError(cerr, core.EIO, "cannot complete output")
	}
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
