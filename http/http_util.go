package http

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Resp JSON Http响应
type Resp struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Msg     string      `json:"msg"`
}

// RenderJSON 渲染JSON
func RenderJSON(w http.ResponseWriter, jsonData interface{}) {
	body, err := json.Marshal(jsonData)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}

// RenderText 渲染Text
func RenderText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

// RenderError 以status响应对应的标准文本
func RenderError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// GetURL 请求URL,返回去掉首尾空白的响应,非200的响应返回错误
func GetURL(client *http.Client, url string, params url.Values) (string, error) {
	status, body, err := GetURLStatus(client, url, params)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("Status:%d,msg:%s", status, body)
	}
	return body, nil
}

// GetURLStatus 请求URL,返回状态码和去掉首尾空白的响应
func GetURLStatus(client *http.Client, url string, params url.Values) (int, string, error) {
	if len(params) > 0 {
		url = url + "?" + params.Encode()
	}
	resp, err := client.Get(url)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	return resp.StatusCode, strings.TrimSpace(string(body)), nil
}
