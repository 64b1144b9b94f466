package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	// Autoloads .env file to supply environment variables
	_ "github.com/joho/godotenv/autoload"

	"github.com/lildude/goldencheetah"
)

func main() {
	host := flag.String("host", os.Getenv("GC_HOST"), "GoldenCheetah API host, e.g. http://localhost:12021/")
	athlete := flag.String("athlete", os.Getenv("GC_ATHLETE"), "full athlete name")
	flag.Parse()

	if err := run(*host, *athlete, flag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(host, athlete string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: gcfetch [-host URL] [-athlete NAME] athletes | activities | activity FILE | last | bulk N")
	}

	ctx := context.Background()
	gc := goldencheetah.NewClient(host, athlete, nil)

	switch args[0] {
	case "athletes":
		roster, err := gc.Athletes(ctx)
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(roster.Columns, ","))
		for _, row := range roster.Rows {
			fmt.Println(strings.Join(row, ","))
		}
	case "activities":
		index, err := gc.Activities(ctx)
		if err != nil {
			return err
		}
		for _, a := range index.Activities {
			fmt.Printf("%s\t%s\n", a.Datetime.Format("2006-01-02 15:04:05"), a.Filename)
		}
	case "activity":
		if len(args) < 2 {
			return fmt.Errorf("activity requires a filename")
		}
		series, err := gc.Activity(ctx, args[1])
		if err != nil {
			return err
		}
		printSeries(series)
	case "last":
		detail, err := gc.LastActivity(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", detail.Activity.Datetime.Format("2006-01-02 15:04:05"), detail.Activity.Filename)
		printSeries(detail.Samples)
	case "bulk":
		if len(args) < 2 {
			return fmt.Errorf("bulk requires a count")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bulk count: %w", err)
		}
		index, err := gc.Activities(ctx)
		if err != nil {
			return err
		}
		records := index.Activities
		if n < len(records) {
			records = records[len(records)-n:]
		}
		filenames := make([]string, len(records))
		for i, a := range records {
			filenames[i] = a.Filename
		}
		bulk, err := gc.ActivitiesBulk(ctx, filenames)
		if err != nil {
			return err
		}
		for _, filename := range filenames {
			fmt.Printf("%s\t%d samples\n", filename, bulk[filename].Len())
		}
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func printSeries(s *goldencheetah.SampleSeries) {
	fmt.Println("offset," + strings.Join(s.Columns, ","))
	for i, row := range s.Values {
		fields := make([]string, 0, len(row)+1)
		fields = append(fields, s.Offsets[i].String())
		for _, v := range row {
			fields = append(fields, strconv.FormatFloat(v, 'f', -1, 64))
		}
		fmt.Println(strings.Join(fields, ","))
	}
}
