package ioinfer

import (
	"image"

	"github.com/disintegration/imaging"
)

// normalization is the channel-wise input normalization a pretrained
// model expects.
type normalization struct {
	// scale multiplies every channel value before centering.
	scale float32
	// mean and std are per-channel, in the model's channel order.
	mean [3]float32
	std  [3]float32
	// bgr flips the channel order from RGB to BGR before centering.
	bgr bool
}

// torchNorm is the normalization of the ImageNet feature extractor:
// scale to [0,1], then center with the ImageNet channel statistics.
var torchNorm = normalization{
	scale: 1.0 / 255.0,
	mean:  [3]float32{0.485, 0.456, 0.406},
	std:   [3]float32{0.229, 0.224, 0.225},
}

// caffeNorm is the normalization of the scene classifier: BGR channel
// order with dataset mean subtraction, no scaling.
var caffeNorm = normalization{
	scale: 1,
	mean:  [3]float32{104.006, 116.669, 122.679},
	std:   [3]float32{1, 1, 1},
	bgr:   true,
}

// identityNorm passes raw 0-255 values through; the instance detector
// does its own input molding server-side.
var identityNorm = normalization{
	scale: 1,
	std:   [3]float32{1, 1, 1},
}

// modelSize is the fixed spatial input size of the batched models.
const modelSize = 224

// detectWidth is the resize width for the instance detector.
const detectWidth = 512

// loadSquare loads an image and resizes it to the fixed 224×224 input
// shape (plain resize, aspect ratio not preserved, matching how the
// classification models were trained).
func loadSquare(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, modelSize, modelSize, imaging.Lanczos), nil
}

// loadDetect loads an image and resizes it proportionally to the
// detector's 512 px width.
func loadDetect(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, detectWidth, 0, imaging.Lanczos), nil
}

// tensorize converts an image to a flat HWC float tensor with the
// given channel-wise normalization applied.
func tensorize(img image.Image, norm normalization) []float32 {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	w, h := b.Dx(), b.Dy()

	res := make([]float32, 0, h*w*3)
	for y := 0; y < h; y++ {
		row := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		for x := 0; x < w; x++ {
			r := float32(row[x*4])
			g := float32(row[x*4+1])
			bl := float32(row[x*4+2])

			ch := [3]float32{r, g, bl}
			if norm.bgr {
				ch = [3]float32{bl, g, r}
			}
			for i := 0; i < 3; i++ {
				v := ch[i]*norm.scale - norm.mean[i]
				res = append(res, v/norm.std[i])
			}
		}
	}
	return res
}
