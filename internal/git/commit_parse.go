package git

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// messageIndent is the indentation git uses for message lines in raw logs
const messageIndent = 4

// Commit holds the headers and message of one raw commit object.
type Commit struct {
	SHA       string
	Tree      string
	Parents   []string
	Author    string
	Committer string
	Message   string
	// Headers holds every header line except parent, last value wins
	Headers map[string]string
}

// Signature is a parsed author or committer header
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Tag holds the headers and message of an annotated tag object.
type Tag struct {
	Name    string
	Object  string
	Type    string
	Tagger  string
	Message string
}

var signatureRegex = regexp.MustCompile(`^(.*) <(.*)> (\d+) ([+-]\d{4})$`)

// ParseSignature splits "Name <email> epoch +zzzz". ok is false when the
// header does not have that shape.
func ParseSignature(header string) (Signature, bool) {
	m := signatureRegex.FindStringSubmatch(header)
	if m == nil {
		return Signature{}, false
	}
	epoch, err := strconv.ParseInt(m[3], 10, 64)
	if err != nil {
		return Signature{}, false
	}
	when := time.Unix(epoch, 0)
	if tz, err := time.Parse("-0700", m[4]); err == nil {
		when = when.In(tz.Location())
	}
	return Signature{Name: m[1], Email: m[2], When: when}, true
}

// AuthorSignature parses the author header
func (c *Commit) AuthorSignature() (Signature, bool) {
	return ParseSignature(c.Author)
}

// CommitterSignature parses the committer header
func (c *Commit) CommitterSignature() (Signature, bool) {
	return ParseSignature(c.Committer)
}

// Subject returns the first line of the message
func (c *Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return subject
}

// ParseCommit parses a single object as printed by "cat-file commit" or a
// one-entry raw log. The sha is supplied by the caller.
func ParseCommit(sha string, lines []string) *Commit {
	return parseObject(sha, lines, messageIndent)
}

func parseObject(sha string, lines []string, indent int) *Commit {
	p := newCommitParser(false, indent)
	p.start(sha)
	for _, line := range lines {
		p.feed(line)
	}
	return p.finish()[0]
}

// ParseCommits parses the output of "log --pretty=raw" (or concatenated
// objects) into one record per "commit <sha>" header.
func ParseCommits(lines []string) []*Commit {
	p := newCommitParser(true, messageIndent)
	for _, line := range lines {
		p.feed(line)
	}
	return p.finish()
}

type commitParser struct {
	multi          bool
	indent         int
	current        *Commit
	done           []*Commit
	inMessage      bool
	lastKey        string
	message        strings.Builder
	pendingBlanks  int
	messageStarted bool
}

func newCommitParser(multi bool, indent int) *commitParser {
	return &commitParser{multi: multi, indent: indent}
}

func (p *commitParser) start(sha string) {
	p.flush()
	p.current = &Commit{SHA: sha, Parents: []string{}, Headers: map[string]string{}}
	p.inMessage = false
	p.lastKey = ""
	p.message.Reset()
	p.pendingBlanks = 0
	p.messageStarted = false
}

func (p *commitParser) feed(line string) {
	line = strings.TrimSuffix(line, "\r")

	if p.multi && strings.HasPrefix(line, "commit ") {
		sha := strings.Join(strings.Fields(line)[1:], " ")
		p.start(sha)
		return
	}
	if p.current == nil {
		// noise before the first record
		return
	}

	if line == "" {
		if !p.inMessage {
			p.inMessage = true
			return
		}
		if p.messageStarted {
			p.pendingBlanks++
		}
		return
	}

	if p.inMessage {
		for ; p.pendingBlanks > 0; p.pendingBlanks-- {
			p.message.WriteString("\n")
		}
		p.message.WriteString(trimIndent(line, p.indent))
		p.message.WriteString("\n")
		p.messageStarted = true
		return
	}

	// multi-line headers such as gpgsig continue with a leading space
	if strings.HasPrefix(line, " ") && p.lastKey != "" && p.lastKey != "parent" {
		p.current.Headers[p.lastKey] += "\n" + line[1:]
		p.setField(p.lastKey, p.current.Headers[p.lastKey])
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	key := fields[0]
	value := strings.Join(fields[1:], " ")
	p.lastKey = key
	if key == "parent" {
		p.current.Parents = append(p.current.Parents, value)
		return
	}
	p.current.Headers[key] = value
	p.setField(key, value)
}

func (p *commitParser) setField(key, value string) {
	switch key {
	case "tree":
		p.current.Tree = value
	case "author":
		p.current.Author = value
	case "committer":
		p.current.Committer = value
	}
}

func (p *commitParser) flush() {
	if p.current == nil {
		return
	}
	p.current.Message = p.message.String()
	p.done = append(p.done, p.current)
	p.current = nil
}

func (p *commitParser) finish() []*Commit {
	p.flush()
	if !p.multi && len(p.done) == 0 {
		return []*Commit{{Parents: []string{}, Headers: map[string]string{}}}
	}
	return p.done
}

// trimIndent removes up to width leading spaces
func trimIndent(line string, width int) string {
	i := 0
	for i < width && i < len(line) && line[i] == ' ' {
		i++
	}
	return line[i:]
}

// ParseTag parses the output of "cat-file tag <name>". Tag messages are
// not indented, so leading spaces are kept.
func ParseTag(name string, lines []string) *Tag {
	c := parseObject("", lines, 0)
	return &Tag{
		Name:    name,
		Object:  c.Headers["object"],
		Type:    c.Headers["type"],
		Tagger:  c.Headers["tagger"],
		Message: c.Message,
	}
}
