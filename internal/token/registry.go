package token

import "strings"

// Fragment maps a substring of a type identifier to a display symbol.
type Fragment struct {
	Match  string
	Symbol string
}

// Registry is the resolver configuration. Fragment tables are scanned in
// order and the first match wins.
type Registry struct {
	// Exact maps full type identifiers to symbols.
	Exact map[string]string
	// Primary is matched against the lowercased full identifier.
	Primary []Fragment
	// Segment is matched case-sensitively against a long final segment.
	Segment []Fragment
	// Extended is matched against the lowercased full identifier when the
	// final segment is a bare hex address.
	Extended []Fragment
}

// tickers shared by the Segment and Extended tables, after the leading
// stablecoin/native/majors block.
var tickers = []string{
	"MATIC", "AVAX", "DOT", "LINK", "UNI", "AAVE", "COMP", "MKR", "SNX", "YFI",
	"CRV", "SUSHI", "1INCH", "BAL", "LDO", "APE", "SHIB", "DOGE", "ADA", "XRP",
	"LTC", "BCH", "EOS", "TRX", "XLM", "VET", "FIL", "ATOM", "NEAR", "FTM",
	"ALGO", "ICP", "FLOW", "HBAR", "XTZ", "EGLD", "THETA", "ZEC", "DASH", "NEO",
	"IOTA", "ZIL", "ONT", "QTUM", "WAVES", "KSM", "DCR", "BAT", "ZRX", "REP",
	"KNC", "LRC", "OMG", "STORJ", "GNT", "FUN", "REQ", "CVC", "TNT", "ADX",
	"MTL", "DNT", "VIB", "TRST", "POWR", "BNT", "MANA", "SALT", "EDG", "BNB",
	"CAKE", "BUSD", "USDD", "TUSD", "FRAX", "LUSD", "SUSD", "GUSD", "PAX", "USDP",
	"RAI", "FEI", "TRIBE", "LQTY", "CVX", "FXS", "SPELL", "MIM", "UST", "LUNA",
	"ANC", "MIR", "ORION", "ORCA", "RAY", "SRM", "MSOL", "STSOL",
}

// Wormhole-bridged assets carry an "et" suffix on their segment name.
var bridged = []string{
	"USDC", "USDT", "WETH", "WBTC", "WAVAX", "WMATIC", "WFTM", "WBNB", "WADA",
	"WDOT", "WLINK", "WUNI", "WAAVE", "WCOMP", "WMKR", "WSNX", "WYFI", "WCRV",
	"WSUSHI", "W1INCH", "WBAL", "WLDO", "WAPE", "WSHIB", "WDOGE", "WXRP",
	"WLTC", "WBCH", "WEOS", "WTRX", "WXLM", "WVET", "WFIL", "WATOM", "WNEAR",
	"WALGO", "WICP", "WFLOW", "WHBAR", "WXTZ", "WEGLD", "WTHETA", "WZEC",
	"WDASH", "WNEO", "WIOTA", "WZIL", "WONT", "WQTUM", "WWAVES", "WKSM",
	"WDCR", "WBAT", "WZRX", "WREP", "WKNC", "WLRC", "WOMG", "WSTORJ", "WGNT",
	"WFUN", "WREQ", "WCVC", "WTNT", "WADX", "WMTL", "WDNT", "WVIB", "WTRST",
	"WPOWR", "WBNT", "WMANA", "WSALT", "WEDG", "WCAKE", "WBUSD", "WUSDD",
	"WTUSD", "WFRAX", "WLUSD", "WSUSD", "WGUSD", "WPAX", "WUSDP", "WRAI",
	"WFEI", "WTRIBE", "WLQTY", "WCVX", "WFXS", "WSPELL", "WMIM", "WUST",
	"WLUNA", "WANC", "WMIR", "WORION", "WORCA", "WRAY", "WSRM", "WMSOL",
	"WSTSOL",
}

// DefaultRegistry returns the built-in Aptos mainnet token tables. Each call
// returns a fresh copy.
func DefaultRegistry() Registry {
	exact := map[string]string{
		"0x1::aptos_coin::AptosCoin": "AptosCoin",
		"0x1::coin::CoinInfo":        "AptosCoin",
		"0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC":  "USDC",
		"0x5e156f1207d0ebfa19a9eeff00d62a282278fb8719f4fab3a586a0a2c0fffbea::coin::T":      "USDT",
		"0x6f986d146e4a90b828d8c12c14b6f4e003fdff11a8eecfce5b93b6931b01b4d::coin::T":       "USDT",
		"0xcc8a89c8dce9693d354449f1f73e60e14e347417854f029db5bc8e7454008abb::coin::T":      "WETH",
		"0xae478ff7d83ed072dbc5e264250e67ef58fa57e12b0f63e327451fdc453f1541::coin::T":      "WBTC",
		"0xdd89c0e695df0692205912fb69fc290418bed0dbe6e4573d744a6d5e6bab6c13::coin::T":      "WAVAX",
		"0x2c7bccf7b31beafd791975b82e3d880fa5aa8b8d2d8d82b4fcc2a1c30823e5ea::coin::T":      "WMATIC",
		"0x5c738a5dfa343bee927c39ebe85b0ceb95fdb5ee5b323c95559614f5a77c47ca::coin::T":      "WFTM",
		"0x8d87a65ba30e09357fa2edea2c80dbac296e5dec2b18287113500b902942929d::coin::T":      "WBNB",
		"0x159df6b7689437016108a019fd5bef736bac692b6d4a1f10c941f6fbb9a74ca6::oft::CakeOFT": "CAKE",
		"0x8c805723ebc0a7c1658ac894c87940e51051dca92b1217b5d8b15fcc3b36f368::coin::T":      "SUSHI",
	}

	primary := []Fragment{
		{Match: "aptos_coin", Symbol: "AptosCoin"},
		{Match: "aptoscoin", Symbol: "AptosCoin"},
		{Match: "usdc", Symbol: "USDC"},
		{Match: "usdt", Symbol: "USDT"},
		{Match: "weth", Symbol: "WETH"},
		{Match: "btc", Symbol: "BTC"},
		{Match: "eth", Symbol: "ETH"},
		{Match: "sol", Symbol: "SOL"},
		{Match: "dai", Symbol: "DAI"},
		{Match: "wbtc", Symbol: "WBTC"},
	}

	majors := []Fragment{
		{Match: "USDC", Symbol: "USDC"},
		{Match: "USDT", Symbol: "USDT"},
		{Match: "APT", Symbol: "AptosCoin"},
		{Match: "ETH", Symbol: "ETH"},
		{Match: "BTC", Symbol: "BTC"},
		{Match: "SOL", Symbol: "SOL"},
		{Match: "DAI", Symbol: "DAI"},
		{Match: "WBTC", Symbol: "WBTC"},
	}

	segment := make([]Fragment, 0, len(majors)+len(tickers)+len(bridged))
	segment = append(segment, majors...)
	for _, t := range tickers {
		segment = append(segment, Fragment{Match: t, Symbol: t})
	}
	for _, b := range bridged {
		segment = append(segment, Fragment{Match: b + "et", Symbol: b})
	}

	extended := make([]Fragment, 0, len(majors)+len(tickers))
	for _, f := range majors {
		match := strings.ToLower(f.Match)
		if f.Symbol == "AptosCoin" {
			match = "aptos"
		}
		extended = append(extended, Fragment{Match: match, Symbol: f.Symbol})
	}
	for _, t := range tickers {
		extended = append(extended, Fragment{Match: strings.ToLower(t), Symbol: t})
	}

	return Registry{
		Exact:    exact,
		Primary:  primary,
		Segment:  segment,
		Extended: extended,
	}
}
