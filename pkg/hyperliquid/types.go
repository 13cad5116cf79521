package hyperliquid

import "encoding/json"

// Instrument selects the perp or spot universe for symbol resolution.
type Instrument string

const (
	Perp Instrument = "PERP"
	Spot Instrument = "SPOT"
)

// Tif is the time-in-force of a limit order.
type Tif string

const (
	TifGtc Tif = "Gtc"
	TifIoc Tif = "Ioc"
	TifAlo Tif = "Alo"
)

// Tpsl distinguishes take-profit from stop-loss triggers.
type Tpsl string

const (
	TakeProfit Tpsl = "tp"
	StopLoss   Tpsl = "sl"
)

// Grouping controls how a batch of orders is treated by the exchange.
type Grouping string

const (
	GroupingNA           Grouping = "na"
	GroupingNormalTpsl   Grouping = "normalTpsl"
	GroupingPositionTpsl Grouping = "positionTpsl"
)

// LimitOrderType is a resting or immediate limit order.
type LimitOrderType struct {
	Tif Tif
}

// TriggerOrderType is a stop or take-profit order. TriggerPx is a decimal
// string; IsMarket selects market execution once triggered.
type TriggerOrderType struct {
	TriggerPx string
	IsMarket  bool
	Tpsl      Tpsl
}

// OrderType holds exactly one of Limit or Trigger.
type OrderType struct {
	Limit   *LimitOrderType
	Trigger *TriggerOrderType
}

// OrderRequest describes one order before normalization. Optional fields use
// pointer or empty-string absence so the normalizer can tell "unset" from
// zero values: a nil IsBuy or empty Sz on a reduce-only order is filled from
// the live position.
type OrderRequest struct {
	Instrument Instrument
	Coin       string
	IsBuy      *bool
	Sz         string
	LimitPx    string
	OrderType  OrderType
	ReduceOnly bool
	Cloid      *Cloid
	Slippage   string // per-order slippage override, decimal fraction
}

// BuilderFee attributes an order flow to a builder. Fee is in tenths of a
// basis point, 0..1_000_000.
type BuilderFee struct {
	Builder string
	Fee     int64
}

// ModifyRequest replaces a resting order identified by exactly one of Oid or
// Cloid.
type ModifyRequest struct {
	Oid   *int64
	Cloid *Cloid
	Order OrderRequest
}

// CancelRequest cancels a resting order by exchange order id.
type CancelRequest struct {
	Coin string
	Oid  int64
}

// CancelByCloidRequest cancels a resting order by client order id.
type CancelByCloidRequest struct {
	Coin  string
	Cloid Cloid
}

// Asset is one resolved entry of the perp or spot universe.
type Asset struct {
	Symbol     string
	ID         int
	Instrument Instrument
	SzDecimals int
}

// Signature carries the r/s/v components as 0x-hex strings, the form the
// exchange endpoint expects.
type Signature struct {
	R string `json:"r"`
	S string `json:"s"`
	V string `json:"v"`
}

// exchangeRequest is the signed envelope posted to /exchange. Field order
// matters: the JSON emitted here is what was signed.
type exchangeRequest struct {
	Action       interface{} `json:"action"`
	Nonce        int64       `json:"nonce"`
	Signature    Signature   `json:"signature"`
	VaultAddress string      `json:"vaultAddress,omitempty"`
	ExpiresAfter *int64      `json:"expiresAfter,omitempty"`
}

// Wire structs use the short keys of the live exchange schema.

type limitTypeWire struct {
	Tif Tif `json:"tif"`
}

type triggerTypeWire struct {
	TriggerPx string `json:"triggerPx"`
	IsMarket  bool   `json:"isMarket"`
	Tpsl      Tpsl   `json:"tpsl"`
}

type orderTypeWire struct {
	Limit   *limitTypeWire   `json:"limit,omitempty"`
	Trigger *triggerTypeWire `json:"trigger,omitempty"`
}

type orderWire struct {
	Asset      int           `json:"a"`
	IsBuy      bool          `json:"b"`
	LimitPx    string        `json:"p"`
	Sz         string        `json:"s"`
	ReduceOnly bool          `json:"r"`
	Type       orderTypeWire `json:"t"`
	Cloid      string        `json:"c,omitempty"`
}

type builderWire struct {
	B string `json:"b"`
	F int64  `json:"f"`
}

type cancelWire struct {
	A int   `json:"a"`
	O int64 `json:"o"`
}

type cancelByCloidWire struct {
	Asset int    `json:"asset"`
	Cloid string `json:"cloid"`
}

type modifyWire struct {
	Oid   interface{} `json:"oid"`
	Order orderWire   `json:"order"`
}

// L1 action payloads.

type orderAction struct {
	Type     string       `json:"type"`
	Orders   []orderWire  `json:"orders"`
	Grouping Grouping     `json:"grouping"`
	Builder  *builderWire `json:"builder,omitempty"`
}

type cancelAction struct {
	Type    string       `json:"type"`
	Cancels []cancelWire `json:"cancels"`
}

type cancelByCloidAction struct {
	Type    string              `json:"type"`
	Cancels []cancelByCloidWire `json:"cancels"`
}

type modifyAction struct {
	Type  string      `json:"type"`
	Oid   interface{} `json:"oid"`
	Order orderWire   `json:"order"`
}

type batchModifyAction struct {
	Type     string       `json:"type"`
	Modifies []modifyWire `json:"modifies"`
}

type scheduleCancelAction struct {
	Type string `json:"type"`
	Time *int64 `json:"time,omitempty"`
}

type updateLeverageAction struct {
	Type     string `json:"type"`
	Asset    int    `json:"asset"`
	IsCross  bool   `json:"isCross"`
	Leverage int    `json:"leverage"`
}

type updateIsolatedMarginAction struct {
	Type  string `json:"type"`
	Asset int    `json:"asset"`
	IsBuy bool   `json:"isBuy"`
	Ntli  int64  `json:"ntli"`
}

type vaultTransferAction struct {
	Type         string `json:"type"`
	VaultAddress string `json:"vaultAddress"`
	IsDeposit    bool   `json:"isDeposit"`
	Usd          int64  `json:"usd"`
}

type subAccountTransferAction struct {
	Type           string `json:"type"`
	SubAccountUser string `json:"subAccountUser"`
	IsDeposit      bool   `json:"isDeposit"`
	Usd            int64  `json:"usd"`
}

type subAccountSpotTransferAction struct {
	Type           string `json:"type"`
	SubAccountUser string `json:"subAccountUser"`
	IsDeposit      bool   `json:"isDeposit"`
	Token          string `json:"token"`
	Amount         string `json:"amount"`
}

type createSubAccountAction struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type setReferrerAction struct {
	Type  string `json:"type"`
	Code  string `json:"code"`
	Nonce int64  `json:"nonce"`
}

type evmUserModifyAction struct {
	Type           string `json:"type"`
	UsingBigBlocks bool   `json:"usingBigBlocks"`
}

type noopAction struct {
	Type string `json:"type"`
}

type agentEnableDexAbstractionAction struct {
	Type string `json:"type"`
}

// User-signed action payloads. The posted JSON carries only the action's own
// fields; hyperliquidChain lives in the EIP-712 message, not the body.

type usdSendAction struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Time        int64  `json:"time"`
}

type spotSendAction struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Token       string `json:"token"`
	Amount      string `json:"amount"`
	Time        int64  `json:"time"`
}

type withdrawAction struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	Time        int64  `json:"time"`
}

type usdClassTransferAction struct {
	Type   string `json:"type"`
	Amount string `json:"amount"`
	ToPerp bool   `json:"toPerp"`
	Nonce  int64  `json:"nonce"`
}

type sendAssetAction struct {
	Type           string `json:"type"`
	Destination    string `json:"destination"`
	SourceDex      string `json:"sourceDex"`
	DestinationDex string `json:"destinationDex"`
	Token          string `json:"token"`
	Amount         string `json:"amount"`
	FromSubAccount string `json:"fromSubAccount"`
	Nonce          int64  `json:"nonce"`
}

type approveAgentAction struct {
	Type         string `json:"type"`
	AgentAddress string `json:"agentAddress"`
	AgentName    string `json:"agentName,omitempty"`
	Nonce        int64  `json:"nonce"`
}

type approveBuilderFeeAction struct {
	Type       string `json:"type"`
	MaxFeeRate string `json:"maxFeeRate"`
	Builder    string `json:"builder"`
	Nonce      int64  `json:"nonce"`
}

type tokenDelegateAction struct {
	Type         string `json:"type"`
	Validator    string `json:"validator"`
	Wei          int64  `json:"wei"`
	IsUndelegate bool   `json:"isUndelegate"`
	Nonce        int64  `json:"nonce"`
}

type convertToMultiSigUserAction struct {
	Type    string `json:"type"`
	Signers string `json:"signers"`
	Nonce   int64  `json:"nonce"`
}

type userDexAbstractionAction struct {
	Type    string `json:"type"`
	User    string `json:"user"`
	Enabled bool   `json:"enabled"`
	Nonce   int64  `json:"nonce"`
}

// Multi-sig envelope: the inner action is pre-marshalled so its bytes stay
// identical between signing and posting.

type multiSigAction struct {
	Type             string          `json:"type"`
	SignatureChainID string          `json:"signatureChainId"`
	Signatures       []Signature     `json:"signatures"`
	Payload          multiSigPayload `json:"payload"`
}

type multiSigPayload struct {
	MultiSigUser string          `json:"multiSigUser"`
	OuterSigner  string          `json:"outerSigner"`
	Action       json.RawMessage `json:"action"`
}

// Deploy and governance actions.

type oraclePricePair struct {
	Key   string `json:"-"`
	Value string `json:"-"`
}

func (p oraclePricePair) MarshalJSON() ([]byte, error) {
	key, err := json.Marshal(p.Key)
	if err != nil {
		return nil, err
	}
	val, err := json.Marshal(p.Value)
	if err != nil {
		return nil, err
	}
	out := append([]byte{'['}, key...)
	out = append(out, ',')
	out = append(out, val...)
	return append(out, ']'), nil
}

type setOracleParams struct {
	Dex             string              `json:"dex"`
	OraclePxs       []oraclePricePair   `json:"oraclePxs"`
	MarkPxs         [][]oraclePricePair `json:"markPxs"`
	ExternalPerpPxs []oraclePricePair   `json:"externalPerpPxs"`
}

type perpDeployAction struct {
	Type      string           `json:"type"`
	SetOracle *setOracleParams `json:"setOracle,omitempty"`
}

type tokenSpecWire struct {
	Name        string `json:"name"`
	SzDecimals  int    `json:"szDecimals"`
	WeiDecimals int    `json:"weiDecimals"`
}

type registerToken2Wire struct {
	Spec     tokenSpecWire `json:"spec"`
	MaxGas   int64         `json:"maxGas"`
	FullName string        `json:"fullName,omitempty"`
}

// GenesisUserBalance is one (user, wei-balance) pair of a genesis
// distribution.
type GenesisUserBalance struct {
	User string
	Wei  string
}

func (b GenesisUserBalance) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{b.User, b.Wei})
}

type userGenesisWire struct {
	Token               int                  `json:"token"`
	UserAndWei          []GenesisUserBalance `json:"userAndWei"`
	ExistingTokenAndWei []GenesisUserBalance `json:"existingTokenAndWei"`
}

type genesisWire struct {
	Token            int    `json:"token"`
	MaxSupply        string `json:"maxSupply"`
	NoHyperliquidity bool   `json:"noHyperliquidity,omitempty"`
}

type registerSpotWire struct {
	Tokens [2]int `json:"tokens"`
}

type registerHyperliquidityWire struct {
	Spot          int    `json:"spot"`
	StartPx       string `json:"startPx"`
	OrderSz       string `json:"orderSz"`
	NOrders       int    `json:"nOrders"`
	NSeededLevels *int   `json:"nSeededLevels,omitempty"`
}

type deployerFeeShareWire struct {
	Token int    `json:"token"`
	Share string `json:"share"`
}

type tokenRefWire struct {
	Token int `json:"token"`
}

type freezeUserWire struct {
	Token  int    `json:"token"`
	User   string `json:"user"`
	Freeze bool   `json:"freeze"`
}

type enableQuoteTokenWire struct {
	Token int `json:"token"`
}

type spotDeployAction struct {
	Type                       string                      `json:"type"`
	RegisterToken2             *registerToken2Wire         `json:"registerToken2,omitempty"`
	UserGenesis                *userGenesisWire            `json:"userGenesis,omitempty"`
	Genesis                    *genesisWire                `json:"genesis,omitempty"`
	RegisterSpot               *registerSpotWire           `json:"registerSpot,omitempty"`
	RegisterHyperliquidity     *registerHyperliquidityWire `json:"registerHyperliquidity,omitempty"`
	SetDeployerTradingFeeShare *deployerFeeShareWire       `json:"setDeployerTradingFeeShare,omitempty"`
	EnableFreezePrivilege      *tokenRefWire               `json:"enableFreezePrivilege,omitempty"`
	RevokeFreezePrivilege      *tokenRefWire               `json:"revokeFreezePrivilege,omitempty"`
	FreezeUser                 *freezeUserWire             `json:"freezeUser,omitempty"`
	EnableQuoteToken           *enableQuoteTokenWire       `json:"enableQuoteToken,omitempty"`
}

// ValidatorProfile is the mutable on-chain profile of a validator. Wire keys
// are snake_case on this action family.
type ValidatorProfile struct {
	NodeIP              *ValidatorNodeIP `json:"node_ip,omitempty"`
	Name                string           `json:"name,omitempty"`
	Description         string           `json:"description,omitempty"`
	DelegationsDisabled bool             `json:"delegations_disabled"`
	CommissionBps       int              `json:"commission_bps"`
	SignerUser          string           `json:"signer,omitempty"`
}

// ValidatorNodeIP wraps the ip field of a validator profile.
type ValidatorNodeIP struct {
	IP string `json:"Ip"`
}

type validatorRegisterWire struct {
	Profile    ValidatorProfile `json:"profile"`
	Unjailed   bool             `json:"unjailed"`
	InitialWei int64            `json:"initial_wei"`
}

// jsonNull marshals as an explicit JSON null; used for variant actions whose
// selected branch carries no payload.
type jsonNull struct{}

func (jsonNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

type cValidatorAction struct {
	Type          string                 `json:"type"`
	Register      *validatorRegisterWire `json:"register,omitempty"`
	ChangeProfile *ValidatorProfile      `json:"changeProfile,omitempty"`
	Unregister    *jsonNull              `json:"unregister,omitempty"`
}

type cSignerAction struct {
	Type       string    `json:"type"`
	JailSelf   *jsonNull `json:"jailSelf,omitempty"`
	UnjailSelf *jsonNull `json:"unjailSelf,omitempty"`
}

// Info request/response DTOs.

type infoRequest struct {
	Type         string `json:"type"`
	User         string `json:"user,omitempty"`
	VaultAddress string `json:"vaultAddress,omitempty"`
	Coin         string `json:"coin,omitempty"`
	Oid          *int64 `json:"oid,omitempty"`
	Cloid        string `json:"cloid,omitempty"`
}

type perpAssetMeta struct {
	Name         string `json:"name"`
	SzDecimals   int    `json:"szDecimals"`
	MaxLeverage  int    `json:"maxLeverage"`
	OnlyIsolated bool   `json:"onlyIsolated,omitempty"`
}

type perpMeta struct {
	Universe []perpAssetMeta `json:"universe"`
}

type spotPairMeta struct {
	Name   string `json:"name"`
	Tokens [2]int `json:"tokens"`
	Index  int    `json:"index"`
}

type spotTokenMeta struct {
	Name        string `json:"name"`
	SzDecimals  int    `json:"szDecimals"`
	WeiDecimals int    `json:"weiDecimals"`
	Index       int    `json:"index"`
}

type spotMeta struct {
	Universe []spotPairMeta  `json:"universe"`
	Tokens   []spotTokenMeta `json:"tokens"`
}

// Leverage reports the margin mode of a position.
type Leverage struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

// Position is one open perp position from clearinghouseState.
type Position struct {
	Coin           string   `json:"coin"`
	Szi            string   `json:"szi"`
	EntryPx        string   `json:"entryPx"`
	PositionValue  string   `json:"positionValue"`
	UnrealizedPnl  string   `json:"unrealizedPnl"`
	ReturnOnEquity string   `json:"returnOnEquity"`
	LiquidationPx  string   `json:"liquidationPx"`
	MarginUsed     string   `json:"marginUsed"`
	MaxLeverage    int      `json:"maxLeverage"`
	Leverage       Leverage `json:"leverage"`
}

// AssetPosition wraps a position entry with its margining type.
type AssetPosition struct {
	Type     string   `json:"type"`
	Position Position `json:"position"`
}

// MarginSummary aggregates account margin figures.
type MarginSummary struct {
	AccountValue    string `json:"accountValue"`
	TotalNtlPos     string `json:"totalNtlPos"`
	TotalRawUsd     string `json:"totalRawUsd"`
	TotalMarginUsed string `json:"totalMarginUsed"`
}

// ClearinghouseState is the perp account snapshot returned by /info.
type ClearinghouseState struct {
	MarginSummary      MarginSummary   `json:"marginSummary"`
	CrossMarginSummary MarginSummary   `json:"crossMarginSummary"`
	Withdrawable       string          `json:"withdrawable"`
	AssetPositions     []AssetPosition `json:"assetPositions"`
	Time               int64           `json:"time"`
}

// SpotBalance is one token balance from spotClearinghouseState.
type SpotBalance struct {
	Coin  string `json:"coin"`
	Token int    `json:"token"`
	Hold  string `json:"hold"`
	Total string `json:"total"`
}

// SpotClearinghouseState is the spot account snapshot returned by /info.
type SpotClearinghouseState struct {
	Balances []SpotBalance `json:"balances"`
}

// OpenOrder is one resting order from the openOrders query.
type OpenOrder struct {
	Coin      string `json:"coin"`
	Side      string `json:"side"`
	LimitPx   string `json:"limitPx"`
	Sz        string `json:"sz"`
	Oid       int64  `json:"oid"`
	Timestamp int64  `json:"timestamp"`
	OrigSz    string `json:"origSz"`
	Cloid     string `json:"cloid,omitempty"`
}

// Fill is one trade fill from the userFills query.
type Fill struct {
	Coin          string `json:"coin"`
	Px            string `json:"px"`
	Sz            string `json:"sz"`
	Side          string `json:"side"`
	Time          int64  `json:"time"`
	StartPosition string `json:"startPosition"`
	Dir           string `json:"dir"`
	ClosedPnl     string `json:"closedPnl"`
	Hash          string `json:"hash"`
	Oid           int64  `json:"oid"`
	Crossed       bool   `json:"crossed"`
	Fee           string `json:"fee"`
	Tid           int64  `json:"tid"`
}

// SubAccount summarises one sub-account of a master address.
type SubAccount struct {
	Name               string             `json:"name"`
	SubAccountUser     string             `json:"subAccountUser"`
	Master             string             `json:"master"`
	ClearinghouseState ClearinghouseState `json:"clearinghouseState"`
}

// VaultFollower is one depositor of a vault.
type VaultFollower struct {
	User          string `json:"user"`
	VaultEquity   string `json:"vaultEquity"`
	Pnl           string `json:"pnl"`
	AllTimePnl    string `json:"allTimePnl"`
	DaysFollowing int    `json:"daysFollowing"`
}

// VaultDetails describes a vault and its followers.
type VaultDetails struct {
	Name             string          `json:"name"`
	VaultAddress     string          `json:"vaultAddress"`
	Leader           string          `json:"leader"`
	Description      string          `json:"description"`
	Apr              float64         `json:"apr"`
	Followers        []VaultFollower `json:"followers"`
	MaxDistributable float64         `json:"maxDistributable"`
	IsClosed         bool            `json:"isClosed"`
}

// Referral describes the caller's referral state.
type Referral struct {
	ReferredBy       json.RawMessage `json:"referredBy"`
	CumVlm           string          `json:"cumVlm"`
	UnclaimedRewards string          `json:"unclaimedRewards"`
	ClaimedRewards   string          `json:"claimedRewards"`
}

// L2Level is one price level of the order book.
type L2Level struct {
	Px string `json:"px"`
	Sz string `json:"sz"`
	N  int    `json:"n"`
}

// L2Book is a two-sided book snapshot: Levels[0] bids, Levels[1] asks.
type L2Book struct {
	Coin   string       `json:"coin"`
	Time   int64        `json:"time"`
	Levels [2][]L2Level `json:"levels"`
}

// RestingStatus reports an order resting on the book.
type RestingStatus struct {
	Oid   int64  `json:"oid"`
	Cloid string `json:"cloid,omitempty"`
}

// FilledStatus reports an immediate (partial) fill.
type FilledStatus struct {
	TotalSz string `json:"totalSz"`
	AvgPx   string `json:"avgPx"`
	Oid     int64  `json:"oid"`
}

// OrderStatus is one per-order outcome inside an order response.
type OrderStatus struct {
	Resting *RestingStatus `json:"resting,omitempty"`
	Filled  *FilledStatus  `json:"filled,omitempty"`
	Error   string         `json:"error,omitempty"`
	Success bool           `json:"-"`
}

// UnmarshalJSON accepts both the object statuses and the bare "success"
// string the exchange emits for some actions.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	if string(data) == `"success"` || string(data) == `"waitingForFill"` || string(data) == `"waitingForTrigger"` {
		s.Success = true
		return nil
	}
	type alias OrderStatus
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = OrderStatus(a)
	return nil
}

// OrderResponse is the decoded /exchange response for order-shaped actions.
type OrderResponse struct {
	Status   string `json:"status"`
	Response struct {
		Type string `json:"type"`
		Data struct {
			Statuses []OrderStatus `json:"statuses"`
		} `json:"data"`
	} `json:"response"`
}
