package query

// Parser builds expressions from a token slice with one token of lookahead.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses a query string.
func Parse(text string) ([]Expr, error) {
	return ParseTokens(Tokenize(text))
}

// ParseTokens parses a token sequence into one ColumnFilter per clause.
// On error no expressions are returned.
func ParseTokens(tokens []Token) ([]Expr, error) {
	return NewParser(tokens).parse()
}

// current returns the current token, or false at end of input.
func (p *Parser) current() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) parse() ([]Expr, error) {
	exprs := []Expr{}
	for {
		if _, ok := p.current(); !ok {
			return exprs, nil
		}
		expr, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
}

// parseClause parses: column = String (Comma | String)*
func (p *Parser) parseClause() (Expr, error) {
	tok, _ := p.current()
	if tok.Type == TokenString && tok.Value == ColumnKeyword {
		// The keyword without '=' lexes as a plain word.
		return nil, p.missingEqualAfterKeyword()
	}
	if tok.Type != TokenIdent {
		return nil, &ParseError{Kind: UnexpectedToken, Token: &tok}
	}
	if tok.Value != ColumnKeyword {
		return nil, &ParseError{Kind: UnknownIdentifier, Name: tok.Value, Token: &tok}
	}
	p.advance()

	next, ok := p.current()
	if !ok {
		return nil, &ParseError{Kind: MissingEqual}
	}
	if next.Type != TokenEqual {
		return nil, &ParseError{Kind: MissingEqual, Token: &next}
	}
	p.advance()

	args := ArgList{Items: []Expr{}}
	for {
		tok, ok := p.current()
		if !ok {
			break
		}
		if tok.Type == TokenString {
			args.Items = append(args.Items, Arg{Value: tok.Value})
		} else if tok.Type != TokenComma {
			break
		}
		p.advance()
	}
	return ColumnFilter{Args: args}, nil
}

func (p *Parser) missingEqualAfterKeyword() *ParseError {
	p.advance()
	next, ok := p.current()
	if !ok {
		return &ParseError{Kind: MissingEqual}
	}
	return &ParseError{Kind: MissingEqual, Token: &next}
}
