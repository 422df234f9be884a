package web

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/madewira/tripdesk/internal/intake"
	"github.com/madewira/tripdesk/internal/intent"
	"github.com/madewira/tripdesk/internal/logger"
)

type textParser interface {
	Parse(ctx context.Context, text string) (intent.Parsed, error)
}

type Server struct {
	srv     *http.Server
	router  *http.ServeMux
	l       *logger.Logger
	conf    Conf
	intakes *intake.Manager
	parser  textParser
}

type Conf struct {
	L                 *logger.Logger
	ServerLogger      *log.Logger
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration
	LivenessEndpoint  string
}

func New(ctx context.Context, conf Conf, intakeManager *intake.Manager, parser textParser) (*Server, error) {
	mux := http.NewServeMux()

	//nolint:exhaustruct
	srv := &http.Server{
		Addr:              net.JoinHostPort(conf.Host, conf.Port),
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		ErrorLog:          conf.ServerLogger,
		Handler:           mux,
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}

	server := &Server{
		srv:     srv,
		router:  mux,
		l:       conf.L,
		conf:    conf,
		intakes: intakeManager,
		parser:  parser,
	}

	server.addRoutes(mux)

	return server, nil
}

func (s *Server) Srv() *http.Server {
	return s.srv
}
