//go:build linux

package activeapp

import (
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/gamacros/gamacrosd/internal/profile"
)

// linuxTracker polls the EWMH _NET_ACTIVE_WINDOW property on the root
// window and reads the active window's WM_CLASS, the closest X11
// analog to a macOS bundle id. It falls back to CommonApp whenever the
// window manager doesn't publish EWMH hints (no compositor, or a
// minimal WM), matching §6.3's fallback requirement.
type linuxTracker struct {
	conn       *xgb.Conn
	root       xproto.Window
	activeAtom xproto.Atom
}

// New connects to the X display named by $DISPLAY. A nil Tracker and
// non-nil error is returned if no X server is reachable (e.g. a bare
// console session); cmd/gamacrosd treats that error as fatal and does
// not start.
func New() (Tracker, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	atomReply, err := xproto.InternAtom(conn, true, uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &linuxTracker{conn: conn, root: root, activeAtom: atomReply.Atom}, nil
}

func (t *linuxTracker) Poll() (string, error) {
	activeWin, ok := t.activeWindow()
	if !ok {
		return string(profile.CommonApp), nil
	}
	class, ok := t.wmClass(activeWin)
	if !ok {
		return string(profile.CommonApp), nil
	}
	return class, nil
}

func (t *linuxTracker) activeWindow() (xproto.Window, bool) {
	reply, err := xproto.GetProperty(t.conn, false, t.root, t.activeAtom, xproto.AtomWindow, 0, 1).Reply()
	if err != nil || reply.Format != 32 || len(reply.Value) < 4 {
		return 0, false
	}
	w := xproto.Window(uint32(reply.Value[0]) | uint32(reply.Value[1])<<8 | uint32(reply.Value[2])<<16 | uint32(reply.Value[3])<<24)
	if w == 0 {
		return 0, false
	}
	return w, true
}

// wmClass returns the instance-class pair's class component (the
// second, null-terminated string in WM_CLASS), which is conventionally
// the application's identifying name (e.g. "firefox", "Code").
func (t *linuxTracker) wmClass(win xproto.Window) (string, bool) {
	reply, err := xproto.GetProperty(t.conn, false, win, xproto.AtomWmClass, xproto.AtomString, 0, 256).Reply()
	if err != nil || len(reply.Value) == 0 {
		return "", false
	}
	parts := strings.Split(string(reply.Value), "\x00")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i], true
		}
	}
	return "", false
}

func (t *linuxTracker) Close() {
	t.conn.Close()
}
