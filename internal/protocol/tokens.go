package protocol

// Inbound control tokens.
const (
	TokenKill           = "kill"
	TokenSpotDir        = "spotdir"
	TokenSpotLoop       = "spotloop"
	TokenEndSpotLoop    = "endspotloop"
	TokenSlideDir       = "slidedir"
	TokenSlideshow      = "slideshow"
	TokenEndSlideshow   = "endslideshow"
	TokenLive           = "live"
	TokenEndLive        = "endlive"
	TokenPan            = "pan"
	TokenTilt           = "tilt"
	TokenGetPanTilt     = "getPanTilt"
	TokenGetOrientation = "getOrientation"
	TokenSetOrientation = "setOrientation"
	TokenGetScoreOnly   = "getScoreOnly"
	TokenSetScoreOnly   = "setScoreOnly"
	TokenLanguage       = "language"
)

// Scoreboard field tokens.
const (
	TokenTeam0        = "team0"
	TokenTeam1        = "team1"
	TokenSet0         = "set0"
	TokenSet1         = "set1"
	TokenTimeout0     = "timeout0"
	TokenTimeout1     = "timeout1"
	TokenScore0       = "score0"
	TokenScore1       = "score1"
	TokenServe        = "servizio"
	TokenStartTimeout = "startTimeout"
	TokenStopTimeout  = "stopTimeout"
)

// Outbound tokens.
const (
	TokenGetStatus   = "getStatus"
	TokenClosedSpot  = "closed_spot"
	TokenClosedLive  = "closed_live"
	TokenOrientation = "orientation"
	TokenIsScoreOnly = "isScoreOnly"
)

// Orientation values of setOrientation.
const (
	OrientationNormal    = 0
	OrientationReflected = 1
)
