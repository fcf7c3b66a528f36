package util

import (
	"Touchline/internal/pkg/consts"
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policy          *bluemonday.Policy
	stripTagsPolicy *bluemonday.Policy
)

func init() {
	stripTagsPolicy = bluemonday.StripTagsPolicy()

	policy = bluemonday.UGCPolicy()
	// 视频与 @ 回复链接
	policy.AllowElements("embed")
	policy.AllowAttrs("src", "type", "width", "height", "allowfullscreen", "quality").OnElements("embed")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^reply_to$`)).OnElements("a")
}

var previewExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Sanitize 清理用户提交的 HTML
func Sanitize(body string) string {
	return policy.Sanitize(body)
}

// StripTags 去掉全部标签，用于通知摘要
func StripTags(body string) string {
	return strings.TrimSpace(stripTagsPolicy.Sanitize(body))
}

func parse(body string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}
	return doc
}

// Preview 取正文第一张图片作为列表缩略图，地址过长时放弃
func Preview(body string) string {
	doc := parse(body)
	if doc == nil {
		return ""
	}
	src, ok := doc.Find("img").First().Attr("src")
	if !ok || src == "" || len(src) >= consts.PreviewMaxSrc {
		return ""
	}
	return PreviewName(src)
}

// PreviewName a/b.jpg -> a/b_77.jpg，未知扩展名原样返回
func PreviewName(name string) string {
	ext := path.Ext(name)
	if _, ok := previewExts[ext]; !ok {
		return name
	}
	return strings.TrimSuffix(name, ext) + consts.PreviewSuffix + ext
}

// HasFlash 正文是否包含 <embed>
func HasFlash(body string) bool {
	doc := parse(body)
	if doc == nil {
		return false
	}
	return doc.Find("embed").Length() > 0
}

// Mentions 提取 a.reply_to 中的用户名，去掉 @ 并去重
func Mentions(body string) []string {
	doc := parse(body)
	if doc == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var names []string
	doc.Find("a.reply_to").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(strings.ReplaceAll(sel.Text(), "@", ""))
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	})
	return names
}
