package filterql

import "strings"

// Print renders node back into the SCIM filter string form of §4.E. For
// every parseable filter s, Parse(Print(Parse(s))) == Parse(s) (§8
// property 3) — Print always quotes comparison values and always
// parenthesizes a logical node nested under another logical node, so the
// output is insensitive to the precedence choices the original author
// made.
func Print(node *Node) string {
	var sb strings.Builder
	printNode(&sb, node, false)
	return sb.String()
}

func printNode(sb *strings.Builder, node *Node, parenthesizeLogical bool) {
	if node.Op.IsLogical() {
		if parenthesizeLogical {
			sb.WriteByte('(')
		}
		for i, child := range node.Children {
			if i > 0 {
				sb.WriteByte(' ')
				sb.WriteString(node.Op.String())
				sb.WriteByte(' ')
			}
			printNode(sb, child, true)
		}
		if parenthesizeLogical {
			sb.WriteByte(')')
		}
		return
	}

	sb.WriteString(printAttributePath(node.Path))
	sb.WriteByte(' ')
	sb.WriteString(node.Op.String())
	if node.Op != PR {
		sb.WriteByte(' ')
		sb.WriteString(quoteFilterValue(node.Value))
	}
}

func printAttributePath(p AttributePath) string {
	var sb strings.Builder
	if p.SchemaURI != "" {
		sb.WriteString(p.SchemaURI)
		sb.WriteByte(':')
	}
	sb.WriteString(p.Name)
	if p.SubName != "" {
		sb.WriteByte('.')
		sb.WriteString(p.SubName)
	}
	return sb.String()
}

func quoteFilterValue(v string) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\'':
			sb.WriteString(`\'`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(v[i])
		}
	}
	sb.WriteByte('\'')
	return sb.String()
}
