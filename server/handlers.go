package server

import (
	"fmt"
	"html"

	"github.com/gofiber/fiber/v3"

	"sadt/codegen"
	"sadt/diagram"
	"sadt/export"
)

func (s *Server) listDiagrams(c fiber.Ctx) error {
	names, err := s.store.List(c.Context())
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	return c.JSON(fiber.Map{"diagrams": names})
}

// load fetches the diagram named in the route, writing the error response
// itself when that fails.
func (s *Server) load(c fiber.Ctx) (*diagram.Diagram, error) {
	d, err := s.store.Load(c.Context(), c.Params("name"))
	if err != nil {
		return nil, fail(c, storeStatus(err), err)
	}
	return d, nil
}

func (s *Server) getDiagram(c fiber.Ctx) error {
	d, err := s.load(c)
	if d == nil {
		return err
	}
	return c.JSON(d)
}

func (s *Server) putDiagram(c fiber.Ctx) error {
	d, err := diagram.Parse(c.Body())
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	name := c.Params("name")
	if err := s.store.Save(c.Context(), name, d); err != nil {
		return fail(c, storeStatus(err), err)
	}
	s.log.Info("diagram saved", "name", name, "nodes", d.NodeCount(), "arrows", d.ArrowCount())
	return c.JSON(fiber.Map{"name": name, "nodes": d.NodeCount(), "arrows": d.ArrowCount()})
}

func (s *Server) deleteDiagram(c fiber.Ctx) error {
	if err := s.store.Delete(c.Context(), c.Params("name")); err != nil {
		return fail(c, storeStatus(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

var contentTypes = map[export.Format]string{
	export.FormatJSON: fiber.MIMEApplicationJSONCharsetUTF8,
	export.FormatSVG:  "image/svg+xml",
}

func (s *Server) exportDiagram(c fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	d, err := s.load(c)
	if d == nil {
		return err
	}
	exporter, err := export.NewExporter(format)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	out, err := exporter.Export(d)
	if err != nil {
		return fail(c, fiber.StatusUnprocessableEntity, err)
	}
	ct, ok := contentTypes[format]
	if !ok {
		ct = fiber.MIMETextPlainCharsetUTF8
	}
	c.Set(fiber.HeaderContentType, ct)
	return c.SendString(out)
}

func (s *Server) code(c fiber.Ctx) error {
	d, err := s.load(c)
	if d == nil {
		return err
	}
	src, err := s.gen.GoModule(d, c.Query("package"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(src)
}

func (s *Server) markdown(c fiber.Ctx) (string, error) {
	d, err := s.load(c)
	if d == nil {
		return "", err
	}
	md, err := s.gen.MarkdownTitled(d, c.Params("name"))
	if err != nil {
		return "", fail(c, fiber.StatusInternalServerError, err)
	}
	return md, nil
}

func (s *Server) doc(c fiber.Ctx) error {
	md, err := s.markdown(c)
	if md == "" {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
	return c.SendString(md)
}

func (s *Server) docHTML(c fiber.Ctx) error {
	md, err := s.markdown(c)
	if md == "" {
		return err
	}
	body, err := codegen.RenderHTML(md)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(
		"<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n%s</body></html>\n",
		html.EscapeString(c.Params("name")), body))
}

func (s *Server) signature(c fiber.Ctx) error {
	id, err := diagram.ParseNodeID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	d, err := s.load(c)
	if d == nil {
		return err
	}
	sig, ok := codegen.Classify(d, id)
	if !ok {
		return fail(c, fiber.StatusNotFound, fmt.Errorf("node %s not found", id))
	}
	return c.JSON(sig)
}
