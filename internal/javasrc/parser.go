package javasrc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// ErrSyntax is returned when a source file contains syntax errors.
var ErrSyntax = errors.New("java syntax error")

// typeDeclarations lists the tree-sitter nodes that declare a type.
var typeDeclarations = map[string]bool{
	"class_declaration":     true,
	"interface_declaration": true,
	"enum_declaration":      true,
	"record_declaration":    true,
}

// Parser parses Java source into declaration trees.
// It is safe for concurrent use; every call gets its own tree-sitter parser.
type Parser struct {
	language *sitter.Language
}

// NewParser creates a new Java parser.
func NewParser() *Parser {
	return &Parser{
		language: sitter.NewLanguage(java.Language()),
	}
}

// ParseFile reads and parses a Java source file. The unit is named after the
// file's base name.
func (p *Parser) ParseFile(ctx context.Context, filePath string) (*Unit, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}
	return p.Parse(ctx, filepath.Base(filePath), source)
}

// Parse parses Java source text into a Unit.
func (p *Parser) Parse(ctx context.Context, name string, source []byte) (*Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to load java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse java file: %s", name)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if bad := firstError(root); bad != nil {
			pos := bad.StartPosition()
			return nil, fmt.Errorf("%w in %s at %d:%d", ErrSyntax, name, pos.Row+1, pos.Column+1)
		}
		return nil, fmt.Errorf("%w in %s", ErrSyntax, name)
	}

	unit := &Unit{Name: name}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		if decl, ok := p.typeDecl(root.NamedChild(i), source); ok {
			unit.Types = append(unit.Types, decl)
		}
	}

	return unit, nil
}

// typeDecl extracts a type declaration and, recursively, its members.
func (p *Parser) typeDecl(node *sitter.Node, source []byte) (TypeDecl, bool) {
	if node == nil || !typeDeclarations[node.Kind()] {
		return TypeDecl{}, false
	}

	decl := TypeDecl{
		Name:        nodeText(node.ChildByFieldName("name"), source),
		Annotations: p.annotations(node, source),
	}

	if body := node.ChildByFieldName("body"); body != nil {
		p.members(body, source, &decl)
	}

	return decl, true
}

// members walks a type body. Enum bodies keep their methods one level down
// in enum_body_declarations.
func (p *Parser) members(body *sitter.Node, source []byte, decl *TypeDecl) {
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		switch child.Kind() {
		case "method_declaration":
			decl.Methods = append(decl.Methods, MethodDecl{
				Name:        nodeText(child.ChildByFieldName("name"), source),
				Annotations: p.annotations(child, source),
				StartLine:   int(child.StartPosition().Row) + 1,
				offset:      child.StartByte(),
			})
			p.innerMembers(child.ChildByFieldName("body"), source, decl)
		case "enum_body_declarations":
			p.members(child, source, decl)
		default:
			if nested, ok := p.typeDecl(child, source); ok {
				decl.Nested = append(decl.Nested, nested)
				continue
			}
			p.innerMembers(child, source, decl)
		}
	}
}

// innerMembers finds class bodies below node that are not type members:
// anonymous classes, enum constant bodies and local classes. Methods of
// anonymous bodies are added to decl; local classes become nested types.
func (p *Parser) innerMembers(node *sitter.Node, source []byte, decl *TypeDecl) {
	walkTree(node, func(n *sitter.Node) bool {
		if nested, ok := p.typeDecl(n, source); ok {
			decl.Nested = append(decl.Nested, nested)
			return false
		}
		if n.Kind() == "class_body" {
			p.members(n, source, decl)
			return false
		}
		return true
	})
}

// annotations returns the annotations in a declaration's modifiers, in source order.
func (p *Parser) annotations(node *sitter.Node, source []byte) []Annotation {
	modifiers := findChildByType(node, "modifiers")
	if modifiers == nil {
		return nil
	}

	var result []Annotation
	for i := uint(0); i < modifiers.ChildCount(); i++ {
		child := modifiers.Child(i)
		switch child.Kind() {
		case "marker_annotation":
			result = append(result, Annotation{Name: nodeText(child.ChildByFieldName("name"), source)})
		case "annotation":
			result = append(result, p.annotation(child, source))
		}
	}
	return result
}

func (p *Parser) annotation(node *sitter.Node, source []byte) Annotation {
	a := Annotation{Name: nodeText(node.ChildByFieldName("name"), source)}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return a
	}

	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		switch child.Kind() {
		case "line_comment", "block_comment":
			continue
		case "element_value_pair":
			a.Pairs = append(a.Pairs, Pair{
				Name:  nodeText(child.ChildByFieldName("key"), source),
				Value: Argument{Raw: nodeText(child.ChildByFieldName("value"), source)},
			})
		default:
			if a.Value == nil {
				a.Value = &Argument{Raw: nodeText(child, source)}
			}
		}
	}
	return a
}
