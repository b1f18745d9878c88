package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/codec"
	"github.com/goliatone/go-formbuilder/pkg/formtree"
	"github.com/goliatone/go-formbuilder/pkg/interact"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/schema"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

const maxImportSize = 16 << 20

// LocationRequest addresses a field list.
type LocationRequest struct {
	Owner  string `json:"owner"`
	Row    int    `json:"row"`
	Column int    `json:"column"`
}

func (l LocationRequest) location() formtree.Location {
	if l.Owner == "" {
		return formtree.Root()
	}
	return formtree.Location{Owner: l.Owner, Row: l.Row, Column: l.Column}
}

// CreateFieldRequest instantiates a palette type. A nil Index appends.
type CreateFieldRequest struct {
	Type     string          `json:"type" binding:"required"`
	Location LocationRequest `json:"location"`
	Index    *int            `json:"index"`
}

// MoveFieldRequest relocates a field.
type MoveFieldRequest struct {
	Location LocationRequest `json:"location"`
	Index    int             `json:"index"`
}

// UpdateFieldRequest carries the editable attributes of a field. Nil members
// keep their current value.
type UpdateFieldRequest struct {
	Name          *string  `json:"name"`
	Label         *string  `json:"label"`
	Required      *bool    `json:"required"`
	Placeholder   *string  `json:"placeholder"`
	Options       *string  `json:"options"`
	AcceptedTypes *string  `json:"acceptedTypes"`
	MaxSize       *float64 `json:"maxSize"`
}

// HeaderRequest renames a table column.
type HeaderRequest struct {
	Header string `json:"header"`
}

func (s *Server) listPalette(c *gin.Context) {
	Success(c, s.palette.List())
}

func (s *Server) exportForm(c *gin.Context) {
	format, err := codec.ParseFormat(c.DefaultQuery("format", string(codec.FormatJSON)))
	if err != nil {
		Fail(c, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.session(false)
	var buf bytes.Buffer
	if err := sess.Export(c.Request.Context(), &buf, format, codec.ExportFileName); err != nil {
		Fail(c, err)
		return
	}
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", `attachment; filename="`+exportName(format)+`"`)
	}
	c.Data(http.StatusOK, contentType(format), buf.Bytes())
}

func (s *Server) importForm(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	format := codec.FormatJSON
	if strings.Contains(c.ContentType(), "yaml") {
		format = codec.FormatYAML
	}
	fields, err := codec.Decode(format, body)
	if err != nil {
		Fail(c, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Replace(fields)
	Success(c, gin.H{
		"fields":     model.ToWire(s.tree.Fields),
		"duplicates": s.tree.DuplicateNames(),
	})
}

func (s *Server) clearForm(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, driver := s.session(confirmed(c))
	if err := sess.Clear(c.Request.Context()); err != nil {
		s.fail(c, err, driver)
		return
	}
	Success(c, nil)
}

func (s *Server) loadSample(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.session(false)
	if !sess.Bootstrap(c.Request.Context(), nil) {
		Error(c, CodeInternal, "error loading sample data")
		return
	}
	Success(c, model.ToWire(s.tree.Fields))
}

func (s *Server) createField(c *gin.Context) {
	var req CreateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.session(false)
	ctx := c.Request.Context()
	loc := req.Location.location()
	var (
		field *model.Field
		err   error
	)
	if req.Index == nil {
		field, err = sess.Append(ctx, loc, req.Type)
	} else {
		field, err = sess.Add(ctx, loc, *req.Index, req.Type)
	}
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, wireOf(field))
}

func (s *Server) getField(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.tree.Find(c.Param("uid"))
	if err != nil {
		Fail(c, err)
		return
	}
	Success(c, wireOf(field))
}

func (s *Server) updateField(c *gin.Context) {
	var req UpdateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.session(false)
	draft, err := sess.Edit(c.Param("uid"))
	if err != nil {
		Fail(c, err)
		return
	}
	req.apply(draft)
	field, err := sess.Save()
	if err != nil {
		s.tree.Cancel()
		Fail(c, err)
		return
	}
	Success(c, wireOf(field))
}

func (r UpdateFieldRequest) apply(draft *formtree.Draft) {
	f := draft.Field
	if r.Name != nil {
		f.Name = *r.Name
	}
	if r.Label != nil {
		f.Label = *r.Label
	}
	if r.Required != nil {
		f.Required = *r.Required
	}
	if r.Placeholder != nil {
		f.Placeholder = *r.Placeholder
	}
	if r.Options != nil {
		draft.OptionsText = *r.Options
	}
	if f.Photo != nil {
		if r.AcceptedTypes != nil {
			f.Photo.AcceptedTypes = *r.AcceptedTypes
		}
		if r.MaxSize != nil {
			f.Photo.MaxSize = *r.MaxSize
		}
	}
}

func (s *Server) removeField(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, driver := s.session(confirmed(c))
	if err := sess.Remove(c.Request.Context(), c.Param("uid")); err != nil {
		s.fail(c, err, driver)
		return
	}
	Success(c, nil)
}

func (s *Server) moveField(c *gin.Context) {
	var req MoveFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.session(false)
	uid := c.Param("uid")
	if err := sess.Move(c.Request.Context(), uid, req.Location.location(), req.Index); err != nil {
		Fail(c, err)
		return
	}
	field, _ := s.tree.Find(uid)
	Success(c, wireOf(field))
}

func (s *Server) attachPhoto(c *gin.Context) {
	header, err := c.FormFile("photo")
	if err != nil {
		BadRequest(c, "photo: "+err.Error())
		return
	}
	src, err := header.Open()
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, driver := s.session(false)
	uid := c.Param("uid")
	file := formtree.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if err := sess.AttachPhoto(c.Request.Context(), uid, file); err != nil {
		s.fail(c, err, driver)
		return
	}
	field, _ := s.tree.Find(uid)
	Success(c, wireOf(field))
}

func (s *Server) detachPhoto(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, driver := s.session(confirmed(c))
	uid := c.Param("uid")
	if err := sess.DetachPhoto(c.Request.Context(), uid); err != nil {
		s.fail(c, err, driver)
		return
	}
	field, _ := s.tree.Find(uid)
	Success(c, wireOf(field))
}

func (s *Server) addColumn(c *gin.Context) {
	s.structural(c, func(sess *builder.Session, uid string) error {
		return sess.AddColumn(c.Request.Context(), uid)
	})
}

func (s *Server) removeColumn(c *gin.Context) {
	s.indexed(c, func(sess *builder.Session, uid string, idx int) error {
		return sess.RemoveColumn(c.Request.Context(), uid, idx)
	})
}

func (s *Server) addTableRow(c *gin.Context) {
	s.structural(c, func(sess *builder.Session, uid string) error {
		return sess.AddTableRow(c.Request.Context(), uid)
	})
}

func (s *Server) removeTableRow(c *gin.Context) {
	s.indexed(c, func(sess *builder.Session, uid string, idx int) error {
		return sess.RemoveTableRow(c.Request.Context(), uid, idx)
	})
}

func (s *Server) addTableColumn(c *gin.Context) {
	s.structural(c, func(sess *builder.Session, uid string) error {
		return sess.AddTableColumn(c.Request.Context(), uid)
	})
}

func (s *Server) removeTableColumn(c *gin.Context) {
	s.indexed(c, func(sess *builder.Session, uid string, idx int) error {
		return sess.RemoveTableColumn(c.Request.Context(), uid, idx)
	})
}

func (s *Server) setTableHeader(c *gin.Context) {
	var req HeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	s.indexed(c, func(sess *builder.Session, uid string, idx int) error {
		return sess.Tree().SetTableHeader(uid, idx, req.Header)
	})
}

func (s *Server) getSchema(c *gin.Context) {
	format, err := codec.ParseFormat(c.DefaultQuery("format", string(codec.FormatJSON)))
	if err != nil {
		Fail(c, err)
		return
	}
	s.mu.Lock()
	fields := model.CloneFields(s.tree.Fields)
	s.mu.Unlock()

	doc, err := s.schema.Document(fields)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := doc.Validate(c.Request.Context()); err != nil {
		Error(c, CodeInternal, err.Error())
		return
	}
	payload, err := schema.Marshal(doc, format)
	if err != nil {
		Fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType(format), payload)
}

func (s *Server) validateForm(c *gin.Context) {
	s.mu.Lock()
	fields := model.CloneFields(s.tree.Fields)
	s.mu.Unlock()

	Success(c, validation.ValidateForm(c.Request.Context(), fields, validation.Options{
		Palette: s.palette,
		Schema:  s.schema,
	}))
}

func (s *Server) getPreview(c *gin.Context) {
	s.mu.Lock()
	fields := model.CloneFields(s.tree.Fields)
	s.mu.Unlock()

	page, err := s.preview.Render(c.Request.Context(), fields)
	if err != nil {
		Fail(c, err)
		return
	}
	c.Data(http.StatusOK, s.preview.ContentType(), page)
}

// structural runs op against the field named in the path and answers with the
// updated field.
func (s *Server) structural(c *gin.Context, op func(*builder.Session, string) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, driver := s.session(confirmed(c))
	uid := c.Param("uid")
	if err := op(sess, uid); err != nil {
		s.fail(c, err, driver)
		return
	}
	field, _ := s.tree.Find(uid)
	Success(c, wireOf(field))
}

func (s *Server) indexed(c *gin.Context, op func(*builder.Session, string, int) error) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		BadRequest(c, "invalid index "+strconv.Quote(c.Param("idx")))
		return
	}
	s.structural(c, func(sess *builder.Session, uid string) error {
		return op(sess, uid, idx)
	})
}

// fail answers err, preferring the message the session showed the user.
func (s *Server) fail(c *gin.Context, err error, driver *interact.Fixed) {
	switch {
	case errors.Is(err, builder.ErrDeclined):
		if prompts := driver.Prompts(); len(prompts) > 0 {
			Error(c, CodeConfirm, prompts[len(prompts)-1]+" Repeat the request with confirm=true.")
			return
		}
	case isFloor(err):
		if messages := driver.Messages(); len(messages) > 0 {
			Error(c, CodeFloor, messages[len(messages)-1])
			return
		}
	}
	Fail(c, err)
}

func isFloor(err error) bool {
	return errors.Is(err, formtree.ErrLastTableRow) || errors.Is(err, formtree.ErrLastTableColumn)
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}

func wireOf(field *model.Field) any {
	if field == nil {
		return nil
	}
	return model.ToWire([]*model.Field{field})[0]
}

func contentType(format codec.Format) string {
	if format == codec.FormatYAML {
		return "application/yaml"
	}
	return "application/json; charset=utf-8"
}

func exportName(format codec.Format) string {
	if format == codec.FormatYAML {
		return strings.TrimSuffix(codec.ExportFileName, ".json") + ".yaml"
	}
	return codec.ExportFileName
}
