package main

/*
This command-line tool deconvolves a blurred image with a known blur
kernel. It takes the name of the deconvolution method as its single
positional argument: "cho" (Cho and Lee, 2009) or "shan" (Shan et al,
2008).

Usage: deblur -blurred in.png -kernel kernel.png -out sharp.png cho
*/

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-deblur/deconv"
	"github.com/jvlmdr/go-deblur/imstack"
	"github.com/jvlmdr/go-file/fileutil"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, path.Base(os.Args[0]), "[flags] method")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, `Deconvolves an image with a kernel. Method is "cho" or "shan".`)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
}

func main() {
	var (
		blurredFile = flag.String("blurred", "", "Blurred input image (PNG or JPEG)")
		kernelFile  = flag.String("kernel", "", "Blur kernel image (odd size, loaded as gray)")
		outFile     = flag.String("out", "", "Output image (PNG)")
		optsFile    = flag.String("opts", "", "Solver options (JSON)")
	)
	flag.Parse()
	if flag.NArg() != 1 || *blurredFile == "" || *kernelFile == "" || *outFile == "" {
		flag.Usage()
		os.Exit(2)
	}
	method := flag.Arg(0)

	opts := deconv.DefaultOptions()
	if *optsFile != "" {
		if err := fileutil.LoadExt(*optsFile, opts); err != nil {
			log.Fatalln("load options:", err)
		}
	}

	blurred, err := loadColor(*blurredFile)
	if err != nil {
		log.Fatalln("load blurred image:", err)
	}
	kernel, err := loadGray(*kernelFile)
	if err != nil {
		log.Fatalln("load kernel:", err)
	}

	var stack imstack.Stack
	stack.Push(blurred)
	stack.Push(kernel)
	if err := deconv.Apply(&stack, method, opts); err != nil {
		log.Fatalln("deconvolution:", err)
	}
	out, err := stack.Pop()
	if err != nil {
		log.Fatalln(err)
	}
	if err := saveImage(*outFile, out); err != nil {
		log.Fatalln("save result:", err)
	}
}

func decodeImage(name string) (image.Image, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return im, nil
}

// loadColor reads an image into [0, 1] floats with 3 channels, or 1
// channel if the file is grayscale.
func loadColor(name string) (*rimg64.Multi, error) {
	im, err := decodeImage(name)
	if err != nil {
		return nil, err
	}
	b := im.Bounds()
	if _, ok := im.(*image.Gray); ok {
		return toGray(im), nil
	}
	dst := rimg64.NewMulti(b.Dx(), b.Dy(), 3)
	for j := 0; j < b.Dy(); j++ {
		for i := 0; i < b.Dx(); i++ {
			r, g, bl, _ := im.At(b.Min.X+i, b.Min.Y+j).RGBA()
			dst.Set(i, j, 0, float64(r)/0xffff)
			dst.Set(i, j, 1, float64(g)/0xffff)
			dst.Set(i, j, 2, float64(bl)/0xffff)
		}
	}
	return dst, nil
}

// loadGray reads an image into a single channel of [0, 1] floats.
func loadGray(name string) (*rimg64.Multi, error) {
	im, err := decodeImage(name)
	if err != nil {
		return nil, err
	}
	return toGray(im), nil
}

func toGray(im image.Image) *rimg64.Multi {
	b := im.Bounds()
	dst := rimg64.NewMulti(b.Dx(), b.Dy(), 1)
	for j := 0; j < b.Dy(); j++ {
		for i := 0; i < b.Dx(); i++ {
			g := color.Gray16Model.Convert(im.At(b.Min.X+i, b.Min.Y+j)).(color.Gray16)
			dst.Set(i, j, 0, float64(g.Y)/0xffff)
		}
	}
	return dst
}

func saveImage(name string, im *rimg64.Multi) error {
	b := image.Rect(0, 0, im.Width, im.Height)
	var dst image.Image
	switch im.Channels {
	case 1:
		gray := image.NewGray(b)
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				gray.SetGray(i, j, color.Gray{Y: quantize(im.At(i, j, 0))})
			}
		}
		dst = gray
	case 3:
		rgba := image.NewNRGBA(b)
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				rgba.SetNRGBA(i, j, color.NRGBA{
					R: quantize(im.At(i, j, 0)),
					G: quantize(im.At(i, j, 1)),
					B: quantize(im.At(i, j, 2)),
					A: 0xff,
				})
			}
		}
		dst = rgba
	default:
		return fmt.Errorf("cannot encode %d-channel image", im.Channels)
	}
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, dst)
}

func quantize(x float64) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 0xff
	}
	return uint8(x*255 + 0.5)
}
