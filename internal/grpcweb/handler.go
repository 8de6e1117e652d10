// Package grpcweb lets browsers call the gRPC service over HTTP/1.1 using
// the binary grpc-web protocol.
package grpcweb

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	schedulev1 "appointment-scheduler/internal/api/schedulev1"
	"appointment-scheduler/internal/middleware"
)

const (
	contentType = "application/grpc-web+proto"
	maxBody     = 1 << 20

	dataFrame    byte = 0x00
	trailerFrame byte = 0x80
)

// Bridge translates grpc-web requests into native gRPC calls.
type Bridge struct {
	conn    *grpc.ClientConn
	log     *zap.Logger
	origins []string
}

// New dials the gRPC server at addr (e.g. "localhost:50051").
func New(addr string, origins []string, log *zap.Logger, opts ...grpc.DialOption) (*Bridge, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	return &Bridge{conn: conn, log: log, origins: origins}, nil
}

func (b *Bridge) Close() error { return b.conn.Close() }

// Handler returns an http.Handler that translates grpc-web into gRPC.
func (b *Bridge) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   b.origins,
		AllowedMethods:   []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Grpc-Web", "X-User-Agent", "Authorization"},
		ExposedHeaders:   []string{"Grpc-Status", "Grpc-Message", "Grpc-Status-Details-Bin"},
		AllowCredentials: true,
		MaxAge:           86400,
	})
	return c.Handler(http.HandlerFunc(b.serve))
}

func (b *Bridge) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !binaryWeb(r.Header.Get("Content-Type")) {
		http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
		return
	}
	if !strings.HasPrefix(r.URL.Path, "/"+schedulev1.ServiceName+"/") {
		writeError(w, codes.Unimplemented, "unknown method")
		return
	}
	b.forward(w, r)
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, codes.Internal, "read body failed")
		return
	}
	if len(body) < 5 {
		writeError(w, codes.InvalidArgument, "body too short")
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + protobuf
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		writeError(w, codes.InvalidArgument, "incomplete frame")
		return
	}
	payload := body[5 : 5+msgLen]

	ctx := metadata.NewOutgoingContext(r.Context(), outgoing(r))

	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.log.Debug("grpc-web call failed",
			zap.String("method", r.URL.Path),
			zap.String("code", st.Code().String()),
		)
		writeStatus(w, st)
		return
	}

	writeSuccess(w, resp.data)
}

// binaryWeb accepts application/grpc-web and application/grpc-web+proto.
// The base64 grpc-web-text variant is not served.
func binaryWeb(ct string) bool {
	ct, _, _ = strings.Cut(ct, ";")
	switch strings.TrimSpace(strings.ToLower(ct)) {
	case "application/grpc-web", contentType:
		return true
	}
	return false
}

// outgoing builds the metadata forwarded to the gRPC server. A browser
// holding only the httpOnly access cookie is authenticated with it.
func outgoing(r *http.Request) metadata.MD {
	md := metadata.MD{}
	if vals := r.Header.Values("Authorization"); len(vals) > 0 {
		md.Set("authorization", vals...)
	} else if c, err := r.Cookie(middleware.AccessCookie); err == nil && c.Value != "" {
		md.Set("authorization", "Bearer "+c.Value)
	}
	if h, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		md.Set("x-forwarded-for", h)
	} else if r.RemoteAddr != "" {
		md.Set("x-forwarded-for", r.RemoteAddr)
	}
	return md
}

// rawMsg wraps already encoded protobuf bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through untouched. The call travels as
// application/grpc+proto.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return schedulev1.CodecName }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(st *status.Status) []byte {
	t := fmt.Sprintf("grpc-status:%d\r\n", st.Code())
	if msg := st.Message(); msg != "" {
		t += "grpc-message:" + url.PathEscape(msg) + "\r\n"
	}
	if len(st.Proto().GetDetails()) > 0 {
		if bin, err := proto.Marshal(st.Proto()); err == nil {
			t += "grpc-status-details-bin:" + base64.RawStdEncoding.EncodeToString(bin) + "\r\n"
		}
	}
	return frame(trailerFrame, []byte(t))
}

func writeError(w http.ResponseWriter, code codes.Code, msg string) {
	writeStatus(w, status.New(code, msg))
}

func writeStatus(w http.ResponseWriter, st *status.Status) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(trailer(st))
}

func writeSuccess(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(dataFrame, data))
	w.Write(trailer(status.New(codes.OK, "")))
}
