package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/brandforge/brandforge"
	"github.com/brandforge/brandforge/utils"
	"github.com/disintegration/imaging"
	"golang.org/x/term"
)

const helpBanner = `
┌┐ ┬─┐┌─┐┌┐┌┌┬┐┌─┐┌─┐┬─┐┌─┐┌─┐
├┴┐├┬┘├─┤│││ ││├┤ │ │├┬┘│ ┬├┤
└─┘┴└─┴ ┴┘└┘─┴┘└  └─┘┴└─└─┘└─┘

Logo compositing and vector tracing tool.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	source    = flag.String("in", "", "Icon source (file path, URL or data URL)")
	outDir    = flag.String("out", ".", "Output directory")
	name      = flag.String("name", "", "Company name composited next to the icon")
	fontName  = flag.String("font", "", "Font family used for the company name")
	hexColor  = flag.String("color", "#000000", "Primary brand color (hex)")
	layout    = flag.String("layout", "all", "Layout to composite: all, horizontal, vertical, icon")
	rtl       = flag.Bool("rtl", false, "Right-to-left text direction")
	traceSVG  = flag.Bool("svg", false, "Also trace the icon into an SVG silhouette")
	threshold = flag.Uint("threshold", uint(brandforge.DefaultThreshold), "Luminance threshold for the tracer (0-255)")
	smooth    = flag.Bool("smooth", false, "Trace smooth curve contours instead of pixel-run strips")
	blur      = flag.Float64("blur", 0, "Denoise blur sigma applied before tracing")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" {
		log.Fatal(utils.DecorateText("Please provide an icon source with the -in flag!", utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ BRANDFORGE", utils.StatusMessage),
		utils.DecorateText("is compositing the logo...", utils.DefaultMessage))
	spinner := utils.NewSpinner(spinnerText, time.Millisecond*80, true)

	isTerm := term.IsTerminal(int(os.Stderr.Fd()))
	if isTerm {
		spinner.Start()
	}
	now := time.Now()

	if *traceSVG {
		if err := traceIcon(); err != nil {
			spinner.RestoreCursor()
			log.Fatalf(
				utils.DecorateText("Failed to trace the icon: %s", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	if err := composite(); err != nil {
		spinner.RestoreCursor()
		log.Fatalf(
			utils.DecorateText("Failed to composite the logo: %s", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}

	if isTerm {
		spinner.StopMsg = fmt.Sprintf("Done in: %s",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
		spinner.Stop()
	}
}

// traceIcon vectorizes the icon and writes the SVG document next to the
// composited rasters.
func traceIcon() error {
	icon, err := brandforge.DecodeSource(*source)
	if err != nil {
		return err
	}
	if *blur > 0 {
		icon = imaging.Blur(icon, *blur)
	}

	var doc string
	if *smooth {
		doc, err = brandforge.TraceContours(icon, uint8(*threshold))
	} else {
		doc, err = brandforge.Vectorize(icon, uint8(*threshold), *hexColor)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(*outDir, "icon.svg"), []byte(doc), 0644)
}

// composite renders the requested layout variations and writes each one as
// a PNG file into the output directory.
func composite() error {
	c := brandforge.NewCompositor()
	asset := brandforge.LogoAsset{
		IconRef:      *source,
		CompanyName:  *name,
		FontFamily:   *fontName,
		PrimaryColor: *hexColor,
		RTL:          *rtl,
	}

	switch strings.ToLower(*layout) {
	case "all":
		set, err := c.GenerateVariations(asset)
		if err != nil {
			return err
		}
		for suffix, dataURL := range map[string]string{
			"horizontal": set.Horizontal,
			"vertical":   set.Vertical,
			"icon":       set.IconOnly,
		} {
			if err := writePNG(suffix, dataURL); err != nil {
				return err
			}
		}
		return nil
	case "horizontal":
		return compositeOne(c, asset, brandforge.Horizontal, "horizontal")
	case "vertical":
		return compositeOne(c, asset, brandforge.Vertical, "vertical")
	case "icon":
		return compositeOne(c, asset, brandforge.IconOnly, "icon")
	default:
		return fmt.Errorf("unsupported layout: %s", *layout)
	}
}

func compositeOne(c *brandforge.Compositor, asset brandforge.LogoAsset, layout brandforge.Layout, suffix string) error {
	dataURL, err := c.Composite(asset.IconRef, asset.CompanyName,
		asset.FontFamily, asset.PrimaryColor, layout, asset.RTL)
	if err != nil {
		return err
	}
	return writePNG(suffix, dataURL)
}

// writePNG decodes the exported data URL and saves it as logo_<suffix>.png.
func writePNG(suffix, dataURL string) error {
	img, err := brandforge.DecodeDataURL(dataURL)
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(*outDir, fmt.Sprintf("logo_%s.png", suffix)))
	if err != nil {
		return err
	}
	defer out.Close()

	return png.Encode(out, img)
}
