package sectioner_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/sectioner"
	"github.com/tsawler/sectioner/layout"
	"github.com/tsawler/sectioner/model"
)

func Example_extractText() {
	out, err := sectioner.Open("document.pdf").Text(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
}

func Example_extractWithOptions() {
	err := sectioner.Open("document.pdf").
		MaxPages(10).
		Strategy(layout.StrategySpan).
		StitchSentences().
		Boundary("punkt").
		Render(context.Background(), os.Stdout, "html")
	if err != nil {
		log.Fatal(err)
	}
}

func Example_fromDocument() {
	size := 11.0
	doc := &model.Document{Pages: []model.Page{{
		Index: 0,
		Spans: []model.Span{
			{Text: "SUMMARY", BBox: model.NewBBox(72, 700, 160, 720), Size: 20, Bold: true},
			{Text: "Everything went to plan this quarter and then some.", BBox: model.NewBBox(72, 670, 400, 681), Size: size},
			{Text: "Revenue grew steadily across every single region.", BBox: model.NewBBox(72, 656, 400, 667), Size: size},
			{Text: "Costs stayed flat and margins improved as planned.", BBox: model.NewBBox(72, 642, 400, 653), Size: size},
		},
	}}}

	out, err := sectioner.FromDocument(doc).Text(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
	// Output:
	// Page 1:
	// 1 [H]: SUMMARY
	// 2-4 [P]: Everything went to plan this quarter and then some. Revenue grew steadily across every single region. Costs stayed flat and margins improved as planned.
}
