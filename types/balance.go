package types

// Balance is the derived net position of a person within a group.
type Balance struct {
	Name    string  `json:"name" yaml:"name"`
	Paid    float64 `json:"paid" yaml:"paid"`
	Owes    float64 `json:"owes" yaml:"owes"`
	Balance float64 `json:"balance" yaml:"balance"`
}

// Balances maps person id to that person's balance.
type Balances map[string]Balance

// Total sums every balance in the group. It is zero when every expense is fully split.
func (b Balances) Total() float64 {
	var total float64
	for _, bal := range b {
		total += bal.Balance
	}
	return total
}
