package node_test

import (
	"fmt"

	"dashboard-converter/node"
)

func ExampleParse() {
	doc, err := node.Parse([]byte(`{"title":"Flows","uid":"abc","panels":[{"gridPos":{"h":8,"y":0.0}}],"x":null}`))
	fmt.Println(err, doc.Keys(), doc.Get("panels").Index(0).Path("gridPos", "y"))

	doc.Rename("title", "name")
	doc.Set("version", node.Int(3))
	fmt.Println(doc)

	// Output:
	// <nil> [title uid panels x] 0.0
	// {"name":"Flows","uid":"abc","panels":[{"gridPos":{"h":8,"y":0.0}}],"x":null,"version":3}
}

func ExampleNode_Encode() {
	doc := node.Pairs("query", `SELECT "a" FROM "b" WHERE x < 3 & y > 2`, "tags", []string{"a"})
	out, _ := doc.Encode()
	fmt.Print(string(out))

	// Output:
	// {
	//   "query": "SELECT \"a\" FROM \"b\" WHERE x < 3 & y > 2",
	//   "tags": [
	//     "a"
	//   ]
	// }
}

func ExampleKind() {
	fmt.Println(node.KindMap, node.KindList, node.Kind(42), node.String("x").Kind().IsScalar())

	// Output:
	// Map List Kind(42) true
}
