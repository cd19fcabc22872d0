package feedparse

import (
	"strings"
)

// undefinedTitle is the literal some vendors emit for entries whose
// title was never set.
const undefinedTitle = "undefined"

// parseEntries extracts the feed entries. Entries without a recoverable
// link are dropped, never returned with an empty link.
func (r *Reader) parseEntries(ns nsTable, root *xmlNode, rawText string) []Entry {
	nodes := entryNodes(root)

	entries := make([]Entry, 0, len(nodes))
	for i, node := range nodes {
		entry, ok := r.parseEntry(ns, node, rawText, i)
		if !ok {
			continue
		}

		entries = append(entries, entry)
	}

	return entries
}

// entryNodes locates the item/entry elements anywhere in the tree, in
// document order. RSS uses <item>, Atom uses <entry>.
func entryNodes(root *xmlNode) []*xmlNode {
	if items := findDeep(root, "item"); len(items) > 0 {
		return items
	}

	return findDeep(root, "entry")
}

// parseEntry extracts one entry. ok is false when no link could be
// recovered.
func (r *Reader) parseEntry(ns nsTable, node *xmlNode, rawText string, index int) (Entry, bool) {
	entry := Entry{
		Title:       ns.textOf(node, "title", "atom:title"),
		Description: ns.textOf(node, "description", "summary", "content", "media:description", "content:encoded", "atom:content"),
		Thumbnail:   resolveThumbnail(ns, node),
		Author:      r.resolveAuthor(ns, node),
		Tags:        resolveTags(ns, node),
	}

	entry.Link = resolveLink(ns, node)
	if entry.Link == "" {
		// Confirmed vendor bug: some feeds emit empty <link> elements.
		// Recover it textually from the raw feed before giving up.
		entry.Link = recoverLinkFromRaw(rawText, index)
	}
	if entry.Link == "" {
		return Entry{}, false
	}

	if entry.Title == "" || entry.Title == undefinedTitle {
		entry.Title = entry.Link
	}

	published, ok := r.parseDate(ns.textOf(node, "pubdate", "published", "updated", "atom:published", "atom:updated", "dc:date"))
	if !ok && r.DefaultPublishedToNow {
		published = r.now().UTC()
	}
	entry.Published = published

	return entry, true
}

// resolveLink returns the entry link from the structured tree: the text
// form (RSS), or the href attribute (Atom), preferring rel="alternate"
// among multiple Atom links.
func resolveLink(ns nsTable, node *xmlNode) string {
	links := ns.findAll(node, "link")
	if len(links) == 0 {
		links = ns.findAll(node, "atom:link")
	}

	var fallback string

	for _, link := range links {
		if text := strings.TrimSpace(link.text); text != "" {
			return text
		}

		href := strings.TrimSpace(link.attr("href"))
		if href == "" {
			continue
		}

		rel := link.attr("rel")
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}

	return fallback
}

// resolveThumbnail tries the media namespaces, the itunes image and the
// enclosure element, in that order.
func resolveThumbnail(ns nsTable, node *xmlNode) string {
	if thumb := ns.find(node, "media:thumbnail"); thumb != nil {
		if url := thumb.attr("url"); url != "" {
			return url
		}
	}

	if content := ns.find(node, "media:content"); content != nil {
		if url := content.attr("url"); url != "" {
			return url
		}
	}

	if image := ns.find(node, "itunes:image"); image != nil {
		if href := image.attr("href"); href != "" {
			return href
		}
	}

	if enclosure := ns.find(node, "enclosure"); enclosure != nil {
		if strings.HasPrefix(enclosure.attr("type"), "image/") {
			return enclosure.attr("url")
		}
	}

	return ""
}

// resolveTags collects category elements; Atom categories carry the
// value in a term attribute.
func resolveTags(ns nsTable, node *xmlNode) []string {
	var tags []string

	for _, category := range ns.findAll(node, "category") {
		value := strings.TrimSpace(category.text)
		if value == "" {
			value = strings.TrimSpace(category.attr("term"))
		}
		if value != "" {
			tags = append(tags, value)
		}
	}

	return tags
}

// Raw-text markers for link recovery.
const (
	itemMarker     = "<item"
	entryMarker    = "<entry"
	linkOpenMarker = "<link"
	linkCloseTag   = "</link"
)

// recoverLinkFromRaw locates the index-th item/entry in the raw feed
// text and returns the text of the nearest following <link> element.
func recoverLinkFromRaw(rawText string, index int) string {
	pos := nthEntryOffset(rawText, index)
	if pos < 0 {
		return ""
	}

	tail := rawText[pos:]

	open := strings.Index(tail, linkOpenMarker)
	if open < 0 {
		return ""
	}

	tail = tail[open:]

	gt := strings.Index(tail, ">")
	if gt < 0 {
		return ""
	}

	selfClosed := gt > 0 && tail[gt-1] == '/'
	tail = tail[gt+1:]

	if selfClosed {
		// The classic form of the bug: <link/>https://... with the URL
		// as stray text after a self-closed element.
		end := strings.Index(tail, "<")
		if end < 0 {
			end = len(tail)
		}
		return strings.TrimSpace(tail[:end])
	}

	end := strings.Index(tail, linkCloseTag)
	if end < 0 {
		return ""
	}

	return strings.TrimSpace(tail[:end])
}

// nthEntryOffset returns the byte offset just past the index-th <item or
// <entry occurrence, or -1 when the text has fewer entries.
func nthEntryOffset(rawText string, index int) int {
	search := rawText
	offset := 0

	for i := 0; i <= index; i++ {
		item := strings.Index(search, itemMarker)
		entry := strings.Index(search, entryMarker)

		next := item
		marker := itemMarker
		if next < 0 || (entry >= 0 && entry < next) {
			next = entry
			marker = entryMarker
		}

		if next < 0 {
			return -1
		}

		offset += next + len(marker)
		search = search[next+len(marker):]
	}

	return offset
}
