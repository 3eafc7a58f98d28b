// Package preprocess rewrites SID( "literal" ) macro invocations into
// precomputed 32-bit hash constants:
//
//	SID( "player_jump" )
//
// becomes
//
//	0x364c060d /* "player_jump" */
//
// Everything outside a recognized invocation is copied byte-for-byte,
// so the pass is safe to apply speculatively to any source tree. Files
// with no invocations are reported unmodified and never rewritten.
package preprocess

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/rubiojr/sidgen/scanner"
	"github.com/rubiojr/sidgen/sid"
)

// Trigger is the exact byte sequence that opens a macro invocation.
// Matching is case-sensitive and requires the four bytes to be
// contiguous: `SID (` with a space does not match.
const Trigger = "SID("

// DefaultMaxLiteral bounds the length of a string argument. A literal
// longer than this is treated as a runaway (likely an unterminated
// string swallowing the rest of the file).
const DefaultMaxLiteral = 4096

// literal extraction states. The extractor is a small explicit state
// machine so the awkward cases (escape at EOF, unterminated literal)
// stay testable in isolation.
type literalState int

const (
	inLiteral literalState = iota
	inLiteralEscape
)

// Processor rewrites buffers and files. The zero value is ready to
// use: djb2 hashing and the default literal bound.
type Processor struct {
	// Hash computes the replacement constant for a literal span.
	// Nil means sid.Hash. A substitute must also be applied to the
	// run-time path or precomputed constants stop matching.
	Hash sid.Func

	// MaxLiteral bounds string argument length. Zero means
	// DefaultMaxLiteral.
	MaxLiteral int

	// Collisions, when non-nil, records every hashed literal and
	// fails the pass if two distinct literals share a hash.
	Collisions *CollisionTracker
}

func (p *Processor) hash(b []byte) uint32 {
	if p.Hash != nil {
		return p.Hash(b)
	}
	return sid.Hash(b)
}

func (p *Processor) maxLiteral() int {
	if p.MaxLiteral > 0 {
		return p.MaxLiteral
	}
	return DefaultMaxLiteral
}

// Rewrite performs one full pass over src, replacing every SID macro
// invocation. Returns the rewritten buffer and whether any replacement
// occurred. On a malformed invocation the whole pass fails and no
// partial output is returned.
func (p *Processor) Rewrite(src []byte) ([]byte, bool, error) {
	sc := scanner.New(src)
	var out bytes.Buffer
	out.Grow(len(src))
	modified := false

	for {
		copySpace(sc, &out)
		ch, ok := sc.Peek()
		if !ok {
			break
		}
		if !scanner.IsAlnum(ch) {
			out.WriteByte(ch)
			sc.Next()
			continue
		}
		// Start of an alphanumeric run: the only place a trigger
		// can match. LookingAt never half-consumes, so a partial
		// trigger at end of input falls through and the run is
		// copied verbatim.
		if sc.LookingAt(Trigger) {
			sc.Skip(len(Trigger))
			lit, err := p.extractLiteral(sc)
			if err != nil {
				return nil, false, err
			}
			h := p.hash(lit)
			if p.Collisions != nil {
				if first, collided := p.Collisions.Note(h, string(lit)); collided {
					return nil, false, fmt.Errorf("line %d: hash collision: %q and %q both hash to 0x%08x", sc.Line(), first, lit, h)
				}
			}
			writeReplacement(&out, h, lit)
			modified = true
			continue
		}
		// Not a trigger: copy the whole run at once.
		for {
			ch, ok := sc.Peek()
			if !ok || !scanner.IsAlnum(ch) {
				break
			}
			out.WriteByte(ch)
			sc.Next()
		}
	}

	return out.Bytes(), modified, nil
}

// extractLiteral consumes the string argument and closing paren of an
// invocation, with the cursor positioned just after the matched `SID(`.
// Whitespace inside the invocation is consumed, not emitted. Returns
// the raw bytes between the quotes; escape pairs are included verbatim
// and never unescaped, so the hash covers exactly what is written.
func (p *Processor) extractLiteral(sc *scanner.Scanner) ([]byte, error) {
	skipSpace(sc)
	ch, ok := sc.Peek()
	if !ok || ch != '"' {
		return nil, fmt.Errorf("line %d: SID macro argument must be a string literal", sc.Line())
	}
	sc.Next()

	var lit []byte
	max := p.maxLiteral()
	state := inLiteral
scan:
	for {
		ch, ok := sc.Next()
		if !ok {
			return nil, fmt.Errorf("line %d: unterminated string literal in SID macro", sc.Line())
		}
		switch state {
		case inLiteralEscape:
			lit = append(lit, ch)
			state = inLiteral
		case inLiteral:
			switch ch {
			case '\\':
				lit = append(lit, ch)
				state = inLiteralEscape
			case '"':
				break scan
			default:
				lit = append(lit, ch)
			}
		}
		if len(lit) > max {
			return nil, fmt.Errorf("line %d: SID string literal exceeds %d bytes", sc.Line(), max)
		}
	}

	skipSpace(sc)
	ch, ok = sc.Next()
	if !ok || ch != ')' {
		return nil, fmt.Errorf("line %d: expected ')' after SID string %q", sc.Line(), snippet(lit))
	}
	return lit, nil
}

// writeReplacement emits the hash constant and a comment reproducing
// the original literal bytes. The replacement is always 19 bytes of
// surrounding syntax plus the literal's length.
func writeReplacement(out *bytes.Buffer, h uint32, lit []byte) {
	fmt.Fprintf(out, "0x%08x /* \"%s\" */", h, lit)
}

// copySpace advances past consecutive whitespace, copying each byte
// unchanged. A no-op if the next byte is not whitespace.
func copySpace(sc *scanner.Scanner, out *bytes.Buffer) {
	for {
		ch, ok := sc.Peek()
		if !ok || !scanner.IsSpace(ch) {
			return
		}
		out.WriteByte(ch)
		sc.Next()
	}
}

// skipSpace advances past consecutive whitespace without emitting it.
// Used inside an invocation, whose bytes are consumed rather than
// copied.
func skipSpace(sc *scanner.Scanner) {
	for {
		ch, ok := sc.Peek()
		if !ok || !scanner.IsSpace(ch) {
			return
		}
		sc.Next()
	}
}

// snippet truncates a literal for use in diagnostics.
func snippet(lit []byte) string {
	if len(lit) > 32 {
		return string(lit[:32]) + "..."
	}
	return string(lit)
}

// ProcessFile loads the file at path, rewrites it, and writes the
// result to outPath only if at least one replacement occurred. The two
// paths may be identical for an in-place overwrite. On a malformed
// invocation nothing is written and the error names the file; the
// original file is left untouched. Returns whether the file was
// modified.
func (p *Processor) ProcessFile(path, outPath string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("cannot read %s: %w", path, err)
	}
	out, modified, err := p.Rewrite(data)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !modified {
		return false, nil
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(outPath, out, mode); err != nil {
		return false, fmt.Errorf("cannot write %s: %w", outPath, err)
	}
	return true, nil
}
