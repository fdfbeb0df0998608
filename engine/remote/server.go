// Package remote bridges preview pages in a browser to server-side navigation
// controllers over a websocket. The page forwards its canvas DOM events and
// alt-click picks; the server answers with view attribute writes and redraw
// requests.
package remote

import (
	"sort"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/ksons/xml3d-blender-exporter/engine/navigation"
	"github.com/ksons/xml3d-blender-exporter/internal/log"
)

// DefaultAddr is the listen address of a server constructed without one.
const DefaultAddr = ":8047"

// Server is the HTTP and websocket front end of the navigation bridge.
type Server interface {
	// App returns the underlying fiber application.
	//
	// Returns:
	//   - *fiber.App: the application
	App() *fiber.App

	// Addr returns the listen address.
	//
	// Returns:
	//   - string: the address
	Addr() string

	// Start listens and serves until Shutdown is called.
	//
	// Returns:
	//   - error: the listener error
	Start() error

	// Shutdown stops the listener and closes every session.
	//
	// Returns:
	//   - error: the shutdown error
	Shutdown() error

	// Registry returns the registry session controllers are registered with.
	//
	// Returns:
	//   - navigation.Registry: the registry
	Registry() navigation.Registry

	// Descriptor returns the default navigation descriptor for new sessions.
	//
	// Returns:
	//   - navigation.Descriptor: the descriptor
	Descriptor() navigation.Descriptor

	// SetDescriptor replaces the default navigation descriptor. Existing
	// sessions keep the settings they were created with.
	//
	// Parameters:
	//   - d: the descriptor
	SetDescriptor(d navigation.Descriptor)

	// OpenSession creates, registers and attaches a session from a hello message.
	//
	// Parameters:
	//   - id: the session id
	//   - hello: the page's hello message
	//   - send: delivers outbound messages to the page
	//
	// Returns:
	//   - *Session: the session
	//   - error: navigation.ErrNoView if the hello carries no view
	OpenSession(id string, hello InboundMessage, send func(OutboundMessage)) (*Session, error)

	// CloseSession unregisters and detaches a session.
	//
	// Parameters:
	//   - id: the session id
	//
	// Returns:
	//   - bool: true if the session existed
	CloseSession(id string) bool

	// Sessions returns snapshots of the open sessions ordered by creation time.
	//
	// Returns:
	//   - []SessionInfo: the session snapshots
	Sessions() []SessionInfo
}

type serverImpl struct {
	mu *sync.Mutex

	app        *fiber.App
	addr       string
	staticDir  string
	registry   navigation.Registry
	descriptor navigation.Descriptor
	sessions   map[string]*Session
}

var _ Server = &serverImpl{}

// NewServer creates the bridge server and its routes.
//
// Parameters:
//   - options: functional options for server configuration
//
// Returns:
//   - Server: the server
func NewServer(options ...ServerOption) Server {
	s := &serverImpl{
		mu:       &sync.Mutex{},
		addr:     DefaultAddr,
		sessions: make(map[string]*Session),
	}
	for _, option := range options {
		option(s)
	}
	if s.registry == nil {
		s.registry = navigation.NewRegistry()
	}

	app := fiber.New(fiber.Config{
		AppName:               "XML3D Navigation",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	if s.staticDir != "" {
		app.Static("/", s.staticDir)
	}

	api := app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Get("/sessions", s.handleListSessions)
	api.Get("/sessions/:id", s.handleGetSession)
	api.Get("/navigation", s.handleGetDescriptor)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/navigation", websocket.New(s.handleNavigationWS))

	s.app = app
	return s
}

func (s *serverImpl) App() *fiber.App {
	return s.app
}

func (s *serverImpl) Addr() string {
	return s.addr
}

func (s *serverImpl) Start() error {
	log.Info("navigation bridge listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

func (s *serverImpl) Shutdown() error {
	err := s.app.Shutdown()

	s.mu.Lock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.CloseSession(id)
	}
	return err
}

func (s *serverImpl) Registry() navigation.Registry {
	return s.registry
}

func (s *serverImpl) Descriptor() navigation.Descriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.descriptor
}

func (s *serverImpl) SetDescriptor(d navigation.Descriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptor = d
}

func (s *serverImpl) OpenSession(id string, hello InboundMessage, send func(OutboundMessage)) (*Session, error) {
	sess, err := newSession(id, hello, s.Descriptor(), send)
	if err != nil {
		log.Warn("could not open session", "session", id, "error", err)
		return nil, err
	}

	s.registry.Register(sess.controller)
	sess.controller.Attach()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info("session opened", "session", id, "view", sess.view.ID(), "mode", sess.controller.Mode())
	return sess, nil
}

func (s *serverImpl) CloseSession(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return false
	}

	s.registry.Unregister(sess.controller)
	log.Info("session closed", "session", id)
	return true
}

func (s *serverImpl) Sessions() []SessionInfo {
	s.mu.Lock()
	infos := make([]SessionInfo, 0, len(s.sessions))
	for _, sess := range s.sessions {
		infos = append(infos, sess.Info())
	}
	s.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Created.Equal(infos[j].Created) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].Created.Before(infos[j].Created)
	})
	return infos
}

func (s *serverImpl) session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}
