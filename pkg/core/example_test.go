package core_test

import (
	"context"
	"fmt"

	"github.com/printsweep/printsweep/pkg/core"
)

func ExampleScan() {
	src := "function f() {\n  console.log('debug');\n  return 1;\n}"
	res := core.Scan(src, []core.Category{core.CatLog})
	fmt.Println(res.Removed)
	fmt.Println(res.Text)
	// Output:
	// 1
	// function f() {
	//   return 1;
	// }
}

// ExampleProcessAll shows a dry run over a directory.
func ExampleProcessAll() {
	ctx := context.Background()
	paths, _ := core.Discover(ctx, core.Config{Root: ".", DefaultExcludes: true})
	cats, err := core.ParseCategories([]string{"log", "debug"})
	if err != nil {
		panic(err)
	}
	results := core.ProcessAll(ctx, paths, cats, core.Options{DryRun: true})
	sum := core.Summarize(results)
	fmt.Printf("%d file(s), %d removable line(s)\n", sum.FilesProcessed, sum.TotalRemoved)
}
