package deconv

import (
	"bufio"
	"encoding/binary"
	"io"
	"log"
	"os"

	"github.com/jvlmdr/go-cv/rimg64"
)

// Checkpoints are raw typed rasters for offline inspection.
// Header: five little-endian int32 words (width, height, frames,
// channels, sample type) followed by the samples, x fastest, channels
// interleaved. Type 0 means float32. Nothing in this package reads
// them back.

const rasterFloat32 = 0

func writeRaster(w io.Writer, im *rimg64.Multi) error {
	hdr := [5]int32{int32(im.Width), int32(im.Height), 1, int32(im.Channels), rasterFloat32}
	if err := binary.Write(w, binary.LittleEndian, hdr[:]); err != nil {
		return err
	}
	buf := make([]float32, im.Width*im.Channels)
	for j := 0; j < im.Height; j++ {
		for i := 0; i < im.Width; i++ {
			for k := 0; k < im.Channels; k++ {
				buf[i*im.Channels+k] = float32(im.At(i, j, k))
			}
		}
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return err
		}
	}
	return nil
}

// saveRaster writes a checkpoint raster. Checkpoints are
// observability artifacts, not part of the result, so failures are
// logged and otherwise ignored.
func saveRaster(fname string, im *rimg64.Multi) {
	file, err := os.Create(fname)
	if err != nil {
		log.Printf("save checkpoint %s: %v", fname, err)
		return
	}
	defer file.Close()
	w := bufio.NewWriter(file)
	if err := writeRaster(w, im); err != nil {
		log.Printf("save checkpoint %s: %v", fname, err)
		return
	}
	if err := w.Flush(); err != nil {
		log.Printf("save checkpoint %s: %v", fname, err)
	}
}
