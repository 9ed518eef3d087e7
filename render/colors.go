package render

// Scene palette
var (
	RgbSky         = RGB{26, 27, 38} // Tokyo Night background
	RgbHorizon     = RGB{65, 72, 104}
	RgbGrassLight  = RGB{16, 170, 16}
	RgbGrassDark   = RGB{0, 154, 0}
	RgbRoadLight   = RGB{107, 107, 107}
	RgbRoadDark    = RGB{99, 99, 99}
	RgbRumbleLight = RGB{255, 255, 255}
	RgbRumbleDark  = RGB{200, 40, 40}
	RgbLaneMarker  = RGB{204, 204, 204}
	RgbObstacle    = RGB{255, 165, 0}
	RgbObstacleTop = RGB{255, 210, 120}
	RgbBall        = RGB{100, 150, 255}
	RgbBallShade   = RGB{60, 100, 200}
)

// HUD palette
var (
	RgbHudText    = RGB{255, 255, 255}
	RgbHudDim     = RGB{180, 180, 180}
	RgbHudAccent  = RGB{255, 255, 0}
	RgbHudWarning = RGB{255, 80, 80}
	RgbOverlayBg  = RGB{20, 20, 30}
)
