package plan

import "fmt"

// Catalog is the ordered, read-only set of purchasable plans.
type Catalog struct {
	ordered []*Plan
	byID    map[string]*Plan
}

func mustPlan(id, title string, monthlyCents, annualCents int64, audience Audience, benefits []string) *Plan {
	p, err := NewPlan(id, title, monthlyCents, annualCents, audience, benefits)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog plan %s: %v", id, err))
	}
	return p
}

// DefaultCatalog returns the built-in plan catalog. Prices are in KES cents.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		mustPlan("handyman-basic", "Handyman Basic", 49900, 499000, AudienceWorker, []string{
			"Appear in handyman compatibility searches",
			"Up to 10 job applications per month",
			"Basic profile badge",
		}),
		mustPlan("handyman-pro", "Handyman Pro", 99900, 999000, AudienceWorker, []string{
			"Priority placement in search results",
			"Unlimited job applications",
			"Verified pro badge",
			"Direct client messaging",
		}),
		mustPlan("client-pro", "Client Pro", 79900, 799000, AudienceClient, []string{
			"Unlimited job postings",
			"Featured listings on the dashboard",
			"Applicant shortlisting tools",
		}),
		mustPlan("business", "Business", 199900, 1999000, AudienceBusiness, []string{
			"Team accounts",
			"Bulk job postings",
			"Dedicated support",
			"Hiring analytics",
		}),
	)
}

// NewCatalog builds a catalog from an ordered plan list.
func NewCatalog(plans ...*Plan) *Catalog {
	c := &Catalog{
		ordered: make([]*Plan, 0, len(plans)),
		byID:    make(map[string]*Plan, len(plans)),
	}
	for _, p := range plans {
		if _, exists := c.byID[p.ID()]; exists {
			panic(fmt.Sprintf("duplicate plan ID in catalog: %s", p.ID()))
		}
		c.ordered = append(c.ordered, p)
		c.byID[p.ID()] = p
	}
	return c
}

// Get returns the plan with the given identifier.
func (c *Catalog) Get(id string) (*Plan, error) {
	p, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown plan: %s", id)
	}
	return p, nil
}

// Has reports whether the catalog contains the given plan identifier.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// List returns the plans in catalog order.
func (c *Catalog) List() []*Plan {
	out := make([]*Plan, len(c.ordered))
	copy(out, c.ordered)
	return out
}
