// Package server serves the carview static assets over HTTP.
//
// Files under the asset directory are served as they are. Any other GET or
// HEAD request receives index.html, so routes handled by the browser app load
// it instead of a 404. /healthz answers {"status":"ok"}. Every request is
// logged through zap with its status and duration.
//
// The listen port defaults to DefaultPort; the serve command lets PORT
// override it.
package server
