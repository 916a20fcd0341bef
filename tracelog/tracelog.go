// Package tracelog forwards codec trace events to a zerolog logger.
package tracelog

import (
	"github.com/rs/zerolog"

	jxsmoln "github.com/reoring/jxsmoln"
)

// Zerolog returns a TraceFunc that logs every event at debug level. Nothing
// is formatted when the logger's level filters debug out.
func Zerolog(l zerolog.Logger) jxsmoln.TraceFunc {
	return func(ev jxsmoln.TraceEvent) {
		e := l.Debug()
		if !e.Enabled() {
			return
		}
		e = e.Str("op", ev.Op).
			Int("line", ev.Line).
			Str("path", ev.Path).
			Int("depth", ev.Depth)
		if ev.Node.Kind != jxsmoln.NodeNone {
			e = e.Stringer("node", ev.Node).Int("xml_line", ev.Node.Line)
		}
		if ev.More {
			e = e.Stringer("token", ev.Token.Kind)
			switch ev.Token.Kind {
			case jxsmoln.TokenKey, jxsmoln.TokenString:
				e = e.Str("text", ev.Token.String)
			case jxsmoln.TokenNumber:
				e = e.Str("text", ev.Token.Number)
			}
		}
		e.Msg(ev.Message)
	}
}
