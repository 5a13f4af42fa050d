package reqdoc_test

import (
	"fmt"
	"log"
	"time"

	"github.com/aretw0/reqdoc"
)

// Example_basic loads a minimal checklist, adds a requirement and exports
// the normalized document.
func Example_basic() {
	session := reqdoc.New(
		reqdoc.WithClock(func() time.Time {
			return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
		}),
	)

	doc, err := session.Load(`{
		"metadata": {"title": "Accessibility checklist"},
		"requirements": {
			"r1": {"title": "Images have alt texts", "metadata": {"mainCategory": "Images"}}
		}
	}`)
	if err != nil {
		log.Fatal(err)
	}

	_, err = session.AddRequirement(reqdoc.Draft{
		Title:        "Forms are labelled",
		MainCategory: "Forms",
	})
	if err != nil {
		log.Fatal(err)
	}

	data, warnings, err := session.Serialize()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("requirements:", doc.Requirements().Len())
	fmt.Println("warnings:", len(warnings))
	fmt.Println("exported bytes:", len(data) > 0)
	// Output:
	// requirements: 2
	// warnings: 0
	// exported bytes: true
}
