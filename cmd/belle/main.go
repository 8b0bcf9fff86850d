/*
Command belle renders typeset documents and asset thumbnails.

Usage:

    belle render [-assets DIR] [-out FILE] [-quality N] [DOC]
    belle thumbnail -asset KEY -size WxH [-label L] [-assets DIR] [-out FILE]

render reads an XML document from file DOC or from stdin and writes the
rendered page as JPEG. thumbnail creates a preview of an image or font asset;
with -label and without -out it is stored in the user's cache directory.
JPEG output is never written to a terminal.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/belle/core"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'belle.cmd'
func tracer() tracing.Trace {
	return tracing.Select("belle.cmd")
}

// tracers of the engine, configured from the -trace flag.
var traceKeys = []string{
	"belle.cmd", "belle.document", "belle.glyph", "belle.font",
	"belle.resources", "belle.picture", "belle.thumbnail",
}

func main() {
	initDisplay()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "thumbnail":
		err = runThumbnail(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		pterm.Error.Printfln("unknown command %q", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		pterm.Error.Println(core.UserMessage(err))
		tracer().Errorf("%v", err)
		os.Exit(core.ExitStatus(err))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: belle render [-assets DIR] [-out FILE] [-quality N] [DOC]")
	fmt.Fprintln(os.Stderr, "       belle thumbnail -asset KEY -size WxH [-label L] [-assets DIR] [-out FILE]")
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.SetDefaultOutput(os.Stderr) // stdout may carry image data
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setup configures tracing and the global configuration. Settings are
// collected from the command line flags.
func setup(settings testconfig.Conf, tlevel string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	settings["tracing.adapter"] = "go"
	settings["trace.root"] = tlevel
	settings["app-key"] = "belle"
	if err := trace2go.ConfigureRoot(settings, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return core.WrapError(err, core.EINTERNAL, "error configuring tracing")
	}
	tracing.SetTraceSelector(trace2go.Selector())
	level := tracing.TraceLevelFromString(tlevel)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	gconf.Initialize(settings)
	tracer().Infof("trace level is %s", tlevel)
	return nil
}
