package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gemini responseSchema 的字段类型
const (
	TypeObject = "OBJECT"
	TypeString = "STRING"
	TypeNumber = "NUMBER"
	TypeArray  = "ARRAY"
)

// Schema 描述期望模型返回的JSON结构，直接作为responseSchema透传
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Inferencer 生成式AI的窄接口，所有远程推理都走这里，测试时用mock替换
type Inferencer interface {
	Generate(ctx context.Context, model string, prompt string, schema *Schema, temperature float64) (json.RawMessage, error)
}

var ErrNoAPIKey = errors.New("llm: api key is empty")
var ErrEmptyReply = errors.New("llm: empty candidates in reply")

// GeminiClient 通过REST调用generateContent，强制application/json输出
type GeminiClient struct {
	apiKey  string
	baseURL string
	rc      *resty.Client
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

func NewGeminiClient(apiKey, baseURL string, timeout time.Duration) *GeminiClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		rc: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate 调用一次生成，返回符合schema的JSON文档。失败不重试，由调用方决定是否重新提交
func (g *GeminiClient) Generate(ctx context.Context, model string, prompt string, schema *Schema, temperature float64) (json.RawMessage, error) {
	if g.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	}

	var result generateResponse
	resp, err := g.rc.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(fmt.Sprintf("%s/%s:generateContent", g.baseURL, model))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("llm: generate failed: %s", result.Error.Message)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyReply
	}

	raw := json.RawMessage(result.Candidates[0].Content.Parts[0].Text)
	// 模型承诺返回schema约束的JSON，这里只验证语法合法性
	if !json.Valid(raw) {
		return nil, fmt.Errorf("llm: reply is not valid JSON")
	}
	return raw, nil
}
