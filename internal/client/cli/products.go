package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/pharmadesk/internal/client/client"
	"github.com/dmitrijs2005/pharmadesk/internal/client/forms"
	"github.com/dmitrijs2005/pharmadesk/internal/client/models"
)

const currency = "USD"

// List prints the products screen.
func (a *App) List(ctx context.Context) error {
	a.renderProducts(a.productService.Products())
	return nil
}

// Refresh reloads the catalog and prints it.
func (a *App) Refresh(ctx context.Context) error {
	a.productService.Load(ctx)
	return a.List(ctx)
}

// Add prompts for a new product. Invalid input is reported per field and
// nothing is sent.
func (a *App) Add(ctx context.Context) error {
	var form forms.ProductForm
	var err error

	if form.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if form.Description, err = getSimpleText(a.reader, "Description", a.out); err != nil {
		return err
	}
	if form.Price, err = getSimpleText(a.reader, "Price ("+currency+")", a.out); err != nil {
		return err
	}

	draft, fieldErrs := form.Validate()
	if len(fieldErrs) > 0 {
		a.printFieldErrors(fieldErrs)
		return fmt.Errorf("invalid product form")
	}

	p, err := a.productService.Create(ctx, draft)
	if err != nil {
		a.printf("Could not add product: %s\n", client.ErrorMessage(err))
		return err
	}

	a.printf("Added #%d %s (%s %s)\n", p.ID, p.Name, p.Price, currency)
	return nil
}

// Delete removes the product whose id is given as the first argument
// after asking for confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: delete <id>\n")
		return fmt.Errorf("missing id")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.printf("Invalid id: %s\n", args[0])
		return err
	}

	p, ok := a.productService.Find(id)
	if !ok {
		a.printf("No product with id %d\n", id)
		return fmt.Errorf("product %d not found", id)
	}

	if !confirm(a.reader, fmt.Sprintf("Delete %q (#%d)?", p.Name, p.ID), a.out) {
		a.printf("Cancelled.\n")
		return nil
	}

	if err := a.productService.Delete(ctx, id); err != nil {
		a.printf("Could not delete product: %s\n", client.ErrorMessage(err))
		return err
	}

	a.printf("Deleted #%d %s\n", p.ID, p.Name)
	return nil
}

func (a *App) renderProducts(products []models.Product) {
	if len(products) == 0 {
		a.printf("No products yet. Use 'add' to create one.\n")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tDESCRIPTION\tPRICE")
	for i, p := range products {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.2f %s\n", i+1, p.ID, p.Name, p.Description, float64(p.Price), currency)
	}
	_ = tw.Flush()

	count, total := a.productService.Summary()
	a.printf("Total: %d product(s), %.2f %s\n", count, total, currency)
}
