package ebiten

import "image/color"

// Logical screen size.
const (
	screenWidth  = 640
	screenHeight = 400
)

// Office layout.
const (
	doorWidth   = 70
	doorHeight  = 200
	doorTop     = 80
	hallWidth   = 50
	meterHeight = 8
	lineHeight  = 16
)

// Color palette
var (
	colorBackground = color.RGBA{14, 12, 20, 255}
	colorOffice     = color.RGBA{34, 30, 44, 255}
	colorDoorOpen   = color.RGBA{22, 20, 28, 255}
	colorDoorClosed = color.RGBA{140, 130, 100, 255}
	colorDoorBroken = color.RGBA{120, 30, 30, 255}
	colorHallDark   = color.RGBA{8, 8, 10, 255}
	colorHallDim    = color.RGBA{90, 80, 40, 255}
	colorHallBright = color.RGBA{220, 200, 120, 255}
	colorAgent      = color.RGBA{200, 40, 40, 255}
	colorPower      = color.RGBA{90, 200, 110, 255}
	colorPowerLow   = color.RGBA{220, 90, 60, 255}
	colorMeterBg    = color.RGBA{50, 50, 60, 255}
	colorCooldown   = color.RGBA{120, 130, 180, 255}
)
