/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Room routes:
//   - /room                → allocate a code, redirect to the host view
//   - /room/:code          → host view (embedded HTML client)
//   - /room/:code/ws       → host WebSocket (creates the room)
//   - /room/:code/events   → SSE stream of state snapshots (broker)
//   - /room/:code/qr       → PNG QR code for the play URL
//   - /play/:code          → player view (embedded HTML client)
//   - /play/:code/ws       → player WebSocket

package main

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

//go:embed clients/host.html
var hostHTML []byte

//go:embed clients/play.html
var playHTML []byte

func servePage(cfg *Config, page []byte) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if !validRoomCode(code) {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(page)
	}
}

// redirectNewRoom allocates a fresh collision-checked room code and
// redirects the host there. The room itself is created when the host's
// WebSocket connects.
func redirectNewRoom(cfg *Config, reg *Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		code := reg.newRoomCode()
		logf(cfg, "ROOMS: Allocated code %s for %s", code, realIP(r))
		http.Redirect(w, r, cfg.prefix+"/room/"+code, http.StatusTemporaryRedirect)
	}
}

// serveEvents streams state snapshots for one room over SSE, fed from
// the broker topic. The current snapshot is sent immediately so a late
// subscriber does not wait for the next mutation.
func serveEvents(cfg *Config, reg *Registry, broker *Broker) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if !validRoomCode(code) {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		hub, ok := reg.lookup(code)
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		securityHeaders(cfg, w)

		updates, cancel := broker.Subscribe(code)
		defer cancel()

		if snapshot := hub.snapshotJSON(); snapshot != nil {
			fmt.Fprintf(w, "event: state.update\ndata: %s\n\n", snapshot)
			flusher.Flush()
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case payload, ok := <-updates:
				if !ok {
					return
				}
				fmt.Fprintf(w, "event: state.update\ndata: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}

// qrHandler generates a PNG QR code pointing players at the join URL.
func qrHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if !validRoomCode(code) {
			http.Error(w, "invalid room code", http.StatusBadRequest)
			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + "/play/" + code

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		_, _ = w.Write(png)
	}
}

func registerRooms(cfg *Config, mux *httprouter.Router) {
	broker := newBroker()
	reg := newRegistry(broker, cfg.sessionTimeout)

	mux.GET(cfg.prefix+"/room", redirectNewRoom(cfg, reg))
	mux.GET(cfg.prefix+"/room/:code", servePage(cfg, hostHTML))
	mux.GET(cfg.prefix+"/room/:code/ws", serveRoomWS(cfg, reg, true))
	mux.GET(cfg.prefix+"/room/:code/events", serveEvents(cfg, reg, broker))
	mux.GET(cfg.prefix+"/room/:code/qr", qrHandler(cfg))

	mux.GET(cfg.prefix+"/play/:code", servePage(cfg, playHTML))
	mux.GET(cfg.prefix+"/play/:code/ws", serveRoomWS(cfg, reg, false))
}
