package server

import (
	"fmt"
	"net/http"

	"users-admin/api"

	"github.com/getkin/kin-openapi/openapi3"
)

// docsHandler 文档端点：启动时加载并校验内嵌的 OpenAPI 文档
type docsHandler struct {
	jsonDoc []byte
	page    []byte
}

func newDocsHandler() (*docsHandler, error) {
	data, err := api.OpenAPIFS.ReadFile("openapi/openapi.yaml")
	if err != nil {
		return nil, fmt.Errorf("docs: read openapi spec: %w", err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("docs: parse openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("docs: invalid openapi spec: %w", err)
	}

	jsonDoc, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("docs: marshal openapi spec: %w", err)
	}

	page, err := api.DocsFS.ReadFile("docs/index.html")
	if err != nil {
		return nil, fmt.Errorf("docs: read docs page: %w", err)
	}

	return &docsHandler{jsonDoc: jsonDoc, page: page}, nil
}

// Page 渲染 swagger-ui 页面
//
// 路由: GET /api-docs
func (d *docsHandler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(d.page)
}

// Document 返回 JSON 格式的 OpenAPI 文档
//
// 路由: GET /api-docs/openapi.json
func (d *docsHandler) Document(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(d.jsonDoc)
}
