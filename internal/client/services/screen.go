package services

// Screen names the surface the user should be shown next.
type Screen string

const (
	ScreenNone          Screen = ""
	ScreenRegister      Screen = "register"
	ScreenLogin         Screen = "login"
	ScreenForgotPattern Screen = "forgot-pattern"
	ScreenWelcome       Screen = "welcome"
	ScreenGame          Screen = "game"
)
