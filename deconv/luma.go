package deconv

import "github.com/jvlmdr/go-cv/rimg64"

// luma converts a 3-channel image to its Rec. 601 luma channel.
func luma(im *rimg64.Multi) *rimg64.Multi {
	if im.Channels != 3 {
		panic("luma of non-3-channel image")
	}
	dst := rimg64.NewMulti(im.Width, im.Height, 1)
	for j := 0; j < im.Height; j++ {
		for i := 0; i < im.Width; i++ {
			y := 0.299*im.At(i, j, 0) + 0.587*im.At(i, j, 1) + 0.114*im.At(i, j, 2)
			dst.Set(i, j, 0, y)
		}
	}
	return dst
}
