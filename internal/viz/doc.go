// Package viz renders curves and heatmaps for the terminal.
//
// The drawing surface is a braille [Canvas]: each character cell packs
// a 2x4 dot grid, so an 80x24 terminal gives a 160x96 pixel raster.
// [Plot] maps figure samples onto the canvas as a connected path and
// [Heatmap] shades a scalar grid with a brightness ramp.
package viz
