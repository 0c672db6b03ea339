package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Unknown IP归属查询失败时的占位值，不阻塞登录
const Unknown = "Unknown"

// Client 公网IP归属查询，best-effort
type Client struct {
	url string
	rc  *resty.Client
}

const defaultURL = "http://ip-api.com/json"

func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = defaultURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		url: url,
		rc:  resty.New().SetTimeout(timeout),
	}
}

type lookupResponse struct {
	Status  string `json:"status"`
	Country string `json:"country"`
	City    string `json:"city"`
	Isp     string `json:"isp"`
}

// Location 查询IP的归属地描述。任何失败都返回Unknown，调用方不需要判错
func (c *Client) Location(ctx context.Context, ip string) string {
	var result lookupResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("%s/%s", c.url, ip))
	if err != nil || resp.IsError() || result.Status != "success" {
		return Unknown
	}
	if result.City != "" {
		return fmt.Sprintf("%s, %s", result.City, result.Country)
	}
	if result.Country != "" {
		return result.Country
	}
	return Unknown
}
