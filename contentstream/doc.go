// Package contentstream tokenizes PDF page content streams into operations.
//
// A content stream is a postfix program: operands are pushed until an
// operator consumes them. Operands are returned as pdfcpu object values so
// the rest of the pipeline shares one object model with the PDF reader.
//
//	ops, err := contentstream.Parse(data)
//	for _, op := range ops {
//	    fmt.Println(op.Operator, op.Operands)
//	}
//
// # Operand Types
//
//   - Numbers (types.Integer, types.Float)
//   - Strings (types.StringLiteral holding the decoded bytes; hex strings
//     are decoded into the same type)
//   - Names (types.Name)
//   - Arrays (types.Array)
//   - Dictionaries (types.Dict)
//   - Booleans (types.Boolean); null is a nil operand
//
// Comments are skipped. Inline image data between ID and EI is skipped and
// the image is reported as a single "BI" operation.
package contentstream
