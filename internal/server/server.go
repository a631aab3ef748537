// Package server exposes the photo query over HTTP
package server

import (
	"net/http"
	"time"

	"github.com/valyala/fastjson"

	"github.com/nainya/photoquery/internal/logger"
	"github.com/nainya/photoquery/pkg/catalog"
	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

// QueryServer answers one-shot queries against a collection. Unlike the find
// bar there is no debouncing: every request is built and evaluated at once.
type QueryServer struct {
	builder *query.Builder
	coll    *catalog.Collection
	log     *logger.Logger
	arenas  fastjson.ArenaPool
}

// NewQueryServer creates a query server
func NewQueryServer(builder *query.Builder, coll *catalog.Collection, log *logger.Logger) *QueryServer {
	return &QueryServer{
		builder: builder,
		coll:    coll,
		log:     log,
	}
}

// ServeHTTP handles GET /query?q=<text>
func (s *QueryServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	text := r.URL.Query().Get("q")
	res := s.builder.Build(text)
	outcome := query.Outcome(res)

	a := s.arenas.Get()
	defer s.arenas.Put(a)

	o := a.NewObject()
	o.Set("query", a.NewString(text))
	o.Set("outcome", a.NewString(outcome))

	if res.Rejected() {
		o.Set("error", a.NewString(res.Err.Error()))
		if res.Diagnostic != "" {
			o.Set("diagnostic", a.NewString(res.Diagnostic))
		}
		s.log.LogQuery(text, outcome, 0, time.Since(start), res.Err)
		writeJSON(w, http.StatusUnprocessableEntity, o)
		return
	}

	photos := s.coll.Query(res.Root)
	spelling := s.builder.Operators().Spelling()
	o.Set("filter", a.NewString(term.Format(res.Root, spelling)))
	o.Set("condition", a.NewString(term.Format(s.coll.Effective(res.Root), spelling)))
	o.Set("count", a.NewNumberInt(len(photos)))
	o.Set("photos", encodePhotos(a, photos))

	s.log.LogQuery(text, outcome, len(photos), time.Since(start), nil)
	writeJSON(w, http.StatusOK, o)
}

func encodePhotos(a *fastjson.Arena, photos []*catalog.Photo) *fastjson.Value {
	arr := a.NewArray()
	for i, p := range photos {
		po := a.NewObject()
		po.Set("id", a.NewString(p.ID.String()))
		po.Set("path", a.NewString(p.Path))
		if p.Description != "" {
			po.Set("description", a.NewString(p.Description))
		}
		tags := a.NewArray()
		for j, t := range p.Tags {
			tags.SetArrayItem(j, a.NewString(t.Name()))
		}
		po.Set("tags", tags)
		arr.SetArrayItem(i, po)
	}
	return arr
}

func writeJSON(w http.ResponseWriter, status int, v *fastjson.Value) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(v.MarshalTo(nil))
}
