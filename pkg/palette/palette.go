// Package palette maps display tags to chart colors.
package palette

import (
	"image/color"
	"strings"

	"gonum.org/v1/plot/plotutil"
)

var named = map[string]color.RGBA{
	"blue":    {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"green":   {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"red":     {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"orange":  {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"purple":  {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"brown":   {R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	"pink":    {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"gray":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"grey":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"olive":   {R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"cyan":    {R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	"black":   {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"magenta": {R: 0xff, G: 0x00, B: 0xff, A: 0xff},
}

// Known reports whether tag names a palette color. An empty tag is not known.
func Known(tag string) bool {
	_, ok := named[normalize(tag)]
	return ok
}

// Resolve returns the color named by tag, falling back to the i-th default
// plot color when the tag is empty or unknown.
func Resolve(tag string, i int) color.Color {
	if c, ok := named[normalize(tag)]; ok {
		return c
	}
	return plotutil.Color(i)
}

func normalize(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
