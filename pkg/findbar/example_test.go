package findbar_test

import (
	"fmt"

	"github.com/nainya/photoquery/pkg/debounce"
	"github.com/nainya/photoquery/pkg/findbar"
	"github.com/nainya/photoquery/pkg/query"
	"github.com/nainya/photoquery/pkg/term"
)

func Example() {
	loop := &debounce.ManualLoop{}
	sink := findbar.FilterSinkFunc(func(root *term.AndTerm) {
		fmt.Println("filter:", term.Expression(root))
	})
	bar := findbar.New(query.NewBuilder(nil), sink, loop)

	for _, r := range "(beach or lake) and not 2019" {
		bar.Type(string(r))
	}
	fmt.Println("text:", bar.Text())

	loop.Advance(debounce.DefaultDelay)
	fmt.Println("builds:", bar.Builds())

	// Output:
	// text: (beach or lake) and not 2019
	// filter: (beach or lake) and not 2019
	// builds: 1
}
