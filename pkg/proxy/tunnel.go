package proxy

import (
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/getmockd/filemock/pkg/httputil"
)

// handleConnect tunnels a CONNECT request to its target without
// terminating TLS.
func (p *Proxy) handleConnect(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "443")
	}

	targetConn, err := p.dialer.DialContext(r.Context(), "tcp", host)
	if err != nil {
		p.logger.Warn("error connecting to tunnel target", "host", host, "error", err)
		httputil.WriteBadGateway(w, "tunnel_error", "error connecting to "+host)
		return
	}

	hijacker, ok := w.(http.Hijacker)
	if !ok {
		p.logger.Error("HTTP server does not support hijacking")
		_ = targetConn.Close()
		httputil.WriteInternalError(w, "hijack_unsupported", "HTTP server does not support hijacking")
		return
	}

	clientConn, buffered, err := hijacker.Hijack()
	if err != nil {
		p.logger.Error("error hijacking connection", "error", err)
		_ = targetConn.Close()
		return
	}

	if _, err := clientConn.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n")); err != nil {
		p.logger.Debug("error sending CONNECT response", "error", err)
		_ = clientConn.Close()
		_ = targetConn.Close()
		return
	}

	p.logger.Debug("tunnel established", "host", host)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		// Bytes the client sent ahead of the 200 sit in the hijack buffer.
		if n := buffered.Reader.Buffered(); n > 0 {
			early, _ := buffered.Reader.Peek(n)
			if _, err := targetConn.Write(early); err != nil {
				_ = targetConn.Close()
				return
			}
		}
		_, _ = io.Copy(targetConn, clientConn)
		_ = targetConn.Close()
	}()

	go func() {
		defer wg.Done()
		_, _ = io.Copy(clientConn, targetConn)
		_ = clientConn.Close()
	}()

	wg.Wait()
}
