//go:build tinygo && !baremetal

package hal

// tinyGoHostHAL is used by `tinygo run` targets such as linux or wasm
// where there is no board.
type tinyGoHostHAL struct {
	logger printLogger
	fb     *memFramebuffer
	kbd    *stubKeyboard
	t      *tinyGoTime
}

// New returns a TinyGo-on-host HAL implementation.
func New() HAL {
	return &tinyGoHostHAL{
		fb:  newMemFramebuffer(240, 320),
		kbd: &stubKeyboard{},
		t:   newTinyGoTime(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) LED() LED         { return nopLED{} }
func (h *tinyGoHostHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHostHAL) Time() Time       { return h.t }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type nopLED struct{}

func (nopLED) High() {}
func (nopLED) Low()  {}
