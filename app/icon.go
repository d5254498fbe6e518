// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"

	"golang.org/x/image/draw"
)

// maxIconSide bounds the icon handed to backends. Platforms derive
// the sizes they need from a single image.
const maxIconSide = 256

// normalizeIcon converts an icon to NRGBA, downscaling when a side
// exceeds maxIconSide. Aspect ratio is preserved.
func normalizeIcon(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxIconSide && h <= maxIconSide {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	if w >= h {
		h = h * maxIconSide / w
		w = maxIconSide
	} else {
		w = w * maxIconSide / h
		h = maxIconSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
