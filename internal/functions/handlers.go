package functions

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"novel/internal/apperr"
)

// Handler adapts Service to the callable HTTP protocol: POST /<name> with
// {"data": {...}}, answered by {"result": {...}} or {"error": {...}}.
type Handler struct {
	svc *Service
}

// NewHandler wraps svc.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type callableError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *Handler) getScenario(c *gin.Context) {
	p, ok := h.payload(c)
	if !ok {
		return
	}
	cmds, err := h.svc.GetScenario(c.Request.Context(), p.Get("tenantId").String(), p.Get("scenarioName").String())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"scenario": cmds})
}

func (h *Handler) getCharacters(c *gin.Context) {
	p, ok := h.payload(c)
	if !ok {
		return
	}
	recs, err := h.svc.GetCharacters(c.Request.Context(), p.Get("tenantId").String())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"characters": recs})
}

func (h *Handler) saveGame(c *gin.Context) {
	p, ok := h.payload(c)
	if !ok {
		return
	}
	var saveData json.RawMessage
	if v := p.Get("saveData"); v.Exists() {
		saveData = json.RawMessage(v.Raw)
	}
	code, err := h.svc.SaveGame(c.Request.Context(), p.Get("tenantId").String(), saveData)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"saveCode": code})
}

func (h *Handler) loadGame(c *gin.Context) {
	p, ok := h.payload(c)
	if !ok {
		return
	}
	data, err := h.svc.LoadGame(c.Request.Context(), p.Get("tenantId").String(), p.Get("saveCode").String())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, gin.H{"saveData": data})
}

// payload extracts the callable arguments. Clients wrap them as
// {"data": {...}}; some runtimes nest them once more as data.data.
func (h *Handler) payload(c *gin.Context) (gjson.Result, bool) {
	body, err := c.GetRawData()
	if err != nil {
		h.fail(c, apperr.InvalidArgument("request body could not be read."))
		return gjson.Result{}, false
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		h.fail(c, apperr.InvalidArgument("request body must be JSON."))
		return gjson.Result{}, false
	}
	return unwrapPayload(body), true
}

func unwrapPayload(body []byte) gjson.Result {
	root := gjson.ParseBytes(body)
	data := root.Get("data")
	if !data.Exists() || !data.IsObject() {
		return root
	}
	if inner := data.Get("data"); inner.Exists() && inner.IsObject() {
		return inner
	}
	return data
}

func (h *Handler) ok(c *gin.Context, result any) {
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// fail writes err as a callable error. Internal causes are logged and
// replaced with a generic message.
func (h *Handler) fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := apperr.Message(err)
	if kind == apperr.KindInternal {
		h.svc.Logger.Printf("request %s: %v", c.GetString(requestIDKey), err)
		msg = "Internal error."
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{"error": callableError{Status: kind.Status(), Message: msg}})
}
