package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Shop
	&Product{},
	&Offer{},
	&Coupon{},
	&Order{},
}
