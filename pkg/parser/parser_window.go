package parser

import (
	"github.com/leapstack-labs/sqldialect/pkg/core"
	"github.com/leapstack-labs/sqldialect/pkg/spi"
	"github.com/leapstack-labs/sqldialect/pkg/token"
)

// Window specification parsing: OVER clauses, PARTITION BY, ORDER BY, frame specs.
//
// Grammar:
//
//	window_spec   → "(" [PARTITION BY expr_list] [ORDER BY order_list] [frame_spec] ")"
//	order_item    → expr [ASC|DESC] [NULLS (FIRST|LAST)]
//	frame_spec    → (ROWS|RANGE|GROUPS) frame_extent
//	frame_extent  → BETWEEN frame_bound AND frame_bound | frame_bound
//	frame_bound   → UNBOUNDED PRECEDING | UNBOUNDED FOLLOWING | CURRENT ROW | expr PRECEDING | expr FOLLOWING

// parseWindowSpec parses a window specification.
func (p *Parser) parseWindowSpec() *core.WindowSpec {
	spec := &core.WindowSpec{}

	if !p.expect(token.LPAREN) {
		return spec
	}

	// PARTITION BY
	if p.match(token.PARTITION) {
		p.expect(token.BY)
		spec.PartitionBy = p.parseExpressionList()
	}

	// ORDER BY
	if p.match(token.ORDER) {
		p.expect(token.BY)
		spec.OrderBy = p.parseOrderByList()
	}

	// Frame specification
	if p.check(token.ROWS) || p.check(token.RANGE) || p.check(token.GROUPS) {
		spec.Frame = p.parseFrameSpec()
	}

	p.expect(token.RPAREN)
	return spec
}

// parseOrderByList parses comma-separated ORDER BY items.
func (p *Parser) parseOrderByList() []core.OrderByItem {
	var items []core.OrderByItem
	for {
		item := core.OrderByItem{Expr: p.parseExpression()}

		if p.match(token.DESC) {
			item.Desc = true
		} else {
			p.match(token.ASC)
		}

		if p.match(token.NULLS) {
			switch {
			case p.match(token.FIRST):
				first := true
				item.NullsFirst = &first
			case p.match(token.LAST):
				first := false
				item.NullsFirst = &first
			default:
				p.addError(p.unexpected("FIRST or LAST"))
			}
		}

		items = append(items, item)
		if !p.match(token.COMMA) {
			break
		}
	}
	return items
}

// parseFrameSpec parses a window frame specification.
func (p *Parser) parseFrameSpec() *core.FrameSpec {
	frame := &core.FrameSpec{}

	// Frame type
	switch {
	case p.match(token.ROWS):
		frame.Type = core.FrameRows
	case p.match(token.RANGE):
		frame.Type = core.FrameRange
	case p.match(token.GROUPS):
		frame.Type = core.FrameGroups
	}

	// BETWEEN ... AND ...
	if p.match(token.BETWEEN) {
		frame.Start = p.parseFrameBound()
		p.expect(token.AND)
		frame.End = p.parseFrameBound()
	} else {
		// Single bound
		frame.Start = p.parseFrameBound()
	}

	return frame
}

// parseFrameBound parses a frame bound.
func (p *Parser) parseFrameBound() *core.FrameBound {
	bound := &core.FrameBound{}

	switch {
	case p.match(token.UNBOUNDED):
		switch {
		case p.match(token.PRECEDING):
			bound.Type = core.FrameUnboundedPreceding
		case p.match(token.FOLLOWING):
			bound.Type = core.FrameUnboundedFollowing
		default:
			p.addError(p.unexpected("PRECEDING or FOLLOWING"))
		}

	case p.check(token.CURRENT) && p.checkPeek(token.ROW):
		p.nextToken()
		p.nextToken()
		bound.Type = core.FrameCurrentRow

	default:
		// N PRECEDING or N FOLLOWING; stop before AND so BETWEEN bounds split
		bound.Offset = p.parseExpressionWithPrecedence(spi.PrecedenceAnd + 1)
		switch {
		case p.match(token.PRECEDING):
			bound.Type = core.FrameExprPreceding
		case p.match(token.FOLLOWING):
			bound.Type = core.FrameExprFollowing
		default:
			p.addError(p.unexpected("PRECEDING or FOLLOWING"))
		}
	}

	return bound
}
