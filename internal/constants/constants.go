package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusOnHold     = "on-hold"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
	OrderStatusFailed     = "failed"
)

// 订单项类型常量
const (
	OrderItemTypeLineItem = "line_item"
	OrderItemTypeCoupon   = "coupon"
)

// 订单元数据键常量
const (
	MetaKeyPDFInvoiceNumber = "_pdf_invoice_number"
	MetaKeyInvoiceNumber    = "_invoice_number"
	MetaKeyCompanyVAT       = "_billing_company_vat"
	MetaKeyCartDiscount     = "_cart_discount"
	MetaKeyOrderCreator     = "_order_creator"
	MetaKeyErpOrderNumber   = "erp_order_number"
)

// 购物车折扣类型常量
const (
	CartDiscountTypeFixed   = "fixed_cart"
	CartDiscountTypePercent = "percent"
)

// 队列常量
const (
	QueueDefault   = "default"
	TaskReportSync = "report:sync"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sr"
)

// 设置键常量
const (
	SettingKeyReportConfig = "report_config"
)

// 报表列表分页边界
const (
	ReportPageSizeMin = 10
	ReportPageSizeMax = 500
)

// 回填默认值
const (
	BackfillDefaultLimit = 1000
)

// 优惠码清洗阈值：长度不超过该值的纯数字零值视为脏数据
const (
	CouponNumericZeroMaxLen = 10
)
