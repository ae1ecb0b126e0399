package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/danmuck/binwire/internal/inspect"
	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/protocol/codecs"
	"github.com/danmuck/binwire/internal/protocol/schema"
	"github.com/danmuck/binwire/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	ErrSchemaNotFound = errors.New("schema not found")
	ErrTrailingBytes  = errors.New("trailing bytes after struct")
)

var contentTypes = map[inspect.Format]string{
	inspect.FormatJSON: "application/json; charset=utf-8",
	inspect.FormatTOML: "application/toml; charset=utf-8",
}

func (s *Server) listImplementations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"implementations": codecs.Names(),
		"default":         s.cfg.Codec.Implementation,
	})
}

func (s *Server) listSchemas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"schemas": s.schemas.Names()})
}

// decode reads one struct region from the body and renders it as a document.
func (s *Server) decode(c *gin.Context) {
	factory, format, sc, ok := s.requestOptions(c)
	if !ok {
		return
	}

	body, err := transport.ReadMemoryBuffer(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		s.fail(c, bodyStatus(err), err)
		return
	}
	in := transport.NewMetered(body, "http")
	codec := s.newCodec(c, factory, in)

	v, err := codec.ReadTyped(protocol.TypeStruct)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if n := in.Available(); n != 0 {
		s.fail(c, http.StatusBadRequest, fmt.Errorf("%w: %d", ErrTrailingBytes, n))
		return
	}
	st := v.(*protocol.Struct)
	if sc != nil {
		if err := schema.Validate(st, *sc); err != nil {
			s.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
	}

	doc, err := inspect.FromStruct(st)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	out, err := inspect.Render(doc, format)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, contentTypes[format], out)
}

// encode parses a document from the body and writes its binary encoding.
func (s *Server) encode(c *gin.Context) {
	factory, format, sc, ok := s.requestOptions(c)
	if !ok {
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		s.fail(c, bodyStatus(err), err)
		return
	}
	doc, err := inspect.Parse(raw, format)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	st, err := doc.ToStruct(s.cfg.Coercion())
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if sc != nil {
		if err := schema.Validate(st, *sc); err != nil {
			s.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
	}

	buf := transport.NewMemoryBuffer(nil)
	codec := s.newCodec(c, factory, transport.NewMetered(buf, "http"))
	if err := codec.WriteTyped(protocol.TypeStruct, st); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	c.Data(http.StatusOK, "application/octet-stream", buf.Bytes())
}

// newCodec builds a codec whose failure logs carry the request they belong to.
func (s *Server) newCodec(c *gin.Context, factory codecs.Factory, t transport.Transport) *protocol.Codec {
	logger := log.Logger.With().
		Str("node", s.Name).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Str("client_ip", c.ClientIP()).
		Logger()
	return factory(t, s.cfg.Codec.Limits).
		WithMetrics(s.cfg.Codec.Metrics).
		WithLogger(logger)
}

// requestOptions resolves ?impl=, ?format= and ?schema=. It writes the error
// response itself and reports ok=false when any of them is invalid.
func (s *Server) requestOptions(c *gin.Context) (codecs.Factory, inspect.Format, *schema.Schema, bool) {
	name := c.Query("impl")
	if name == "" {
		name = s.cfg.Codec.Implementation
	}
	factory, err := codecs.Lookup(name)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, "", nil, false
	}
	format, err := inspect.ParseFormat(c.Query("format"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return nil, "", nil, false
	}
	var sc *schema.Schema
	if schemaName := c.Query("schema"); schemaName != "" {
		found, ok := s.schemas.Lookup(schemaName)
		if !ok {
			s.fail(c, http.StatusNotFound, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName))
			return nil, "", nil, false
		}
		sc = &found
	}
	return factory, format, sc, true
}

func (s *Server) fail(c *gin.Context, status int, err error) {
	kind := protocol.ErrorKind(err)
	var fe *protocol.FieldError
	body := gin.H{"error": err.Error(), "kind": kind}
	if errors.As(err, &fe) {
		body["path"] = fe.Path
	}
	if status >= http.StatusInternalServerError {
		log.Error().Str("service", s.Name).Err(err).Msg("request failed")
	}
	c.AbortWithStatusJSON(status, body)
}

func bodyStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
