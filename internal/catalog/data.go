package catalog

import "github.com/kioskgym/kioskgym/internal/domain"

// Default reference data. Display names are Korean because the training
// screens render them verbatim; identity everywhere else is by ID.

var burgerItems = []domain.Item{
	{ID: "b1", Name: "불고기버거", Category: "버거", Price: 4500},
	{ID: "b2", Name: "치즈버거", Category: "버거", Price: 4000},
	{ID: "b3", Name: "새우버거", Category: "버거", Price: 5000},
	{ID: "b4", Name: "감자튀김", Category: "사이드", Price: 2000},
	{ID: "b5", Name: "치킨너겟", Category: "사이드", Price: 3000},
	{ID: "b6", Name: "콜라", Category: "음료", Price: 1500},
	{ID: "b7", Name: "사이다", Category: "음료", Price: 1500},
	{ID: "b8", Name: "아이스티", Category: "음료", Price: 2000},
}

var burgerMissions = []domain.CartMission{
	{
		Text: "새우버거 3개, 콜라 1잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "새우버거", Quantity: 3},
			{Name: "콜라", Quantity: 1},
		},
	},
	{
		Text: "불고기버거 2개, 감자튀김 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "불고기버거", Quantity: 2},
			{Name: "감자튀김", Quantity: 1},
		},
	},
	{
		Text: "치즈버거 1개, 사이다 2잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "치즈버거", Quantity: 1},
			{Name: "사이다", Quantity: 2},
		},
	},
}

// Shared cafe option groups. Ice adjustment is free; ICE and extra shot
// carry a surcharge.
var iceAdjustGroup = domain.ModifierGroup{
	Name: "얼음 조절",
	Modifiers: []domain.Modifier{
		{Name: "얼음 추가"},
		{Name: "얼음 적게"},
		{Name: "얼음 빼기"},
	},
}

var coffeeGroups = []domain.ModifierGroup{
	{
		Name: "온도/샷",
		Modifiers: []domain.Modifier{
			{Name: "HOT"},
			{Name: "ICE", PriceDelta: 500},
			{Name: "샷 추가", PriceDelta: 500},
		},
	},
	iceAdjustGroup,
}

var adeGroups = []domain.ModifierGroup{
	{
		Name:      "온도",
		Modifiers: []domain.Modifier{{Name: "ICE Only"}},
	},
	iceAdjustGroup,
}

var chocoGroups = []domain.ModifierGroup{
	{
		Name: "온도",
		Modifiers: []domain.Modifier{
			{Name: "HOT"},
			{Name: "ICE", PriceDelta: 500},
			{Name: "샷 추가", PriceDelta: 500},
		},
	},
	iceAdjustGroup,
}

var dessertGroups = []domain.ModifierGroup{
	{
		Name: "디저트",
		Modifiers: []domain.Modifier{
			{Name: "기본"},
			{Name: "포크 2개"},
		},
	},
}

var cafeItems = []domain.Item{
	{ID: "c1", Name: "아메리카노", Category: "커피", Price: 2000, Groups: coffeeGroups},
	{ID: "c2", Name: "카페라떼", Category: "커피", Price: 3000, Groups: coffeeGroups},
	{ID: "c3", Name: "바닐라라떼", Category: "커피", Price: 3500, Groups: coffeeGroups},
	{ID: "c4", Name: "카페모카", Category: "커피", Price: 3800, Groups: coffeeGroups},
	{ID: "d1", Name: "레몬에이드", Category: "음료", Price: 3500, Groups: adeGroups},
	{ID: "d2", Name: "아이스티", Category: "음료", Price: 3500, Groups: adeGroups},
	{ID: "d3", Name: "초코라떼", Category: "음료", Price: 4500, Groups: chocoGroups},
	{ID: "k1", Name: "초코무스 케이크", Category: "디저트", Price: 5500, Groups: dessertGroups},
	{ID: "k2", Name: "치즈 케이크", Category: "디저트", Price: 5500, Groups: dessertGroups},
	{ID: "k3", Name: "크로플", Category: "디저트", Price: 3500, Groups: dessertGroups},
}

var cafeMissions = []domain.CartMission{
	{
		Text: "따뜻한 아메리카노 3잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "아메리카노", Quantity: 3, Option: "HOT"},
		},
	},
	{
		Text: "아이스 바닐라라떼(얼음 적게) 1잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "바닐라라떼", Quantity: 1, Option: "ICE, 얼음 적게"},
		},
	},
	{
		Text: "크로플(포크 2개) 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "크로플", Quantity: 1, Option: "기본, 포크 2개"},
		},
	},
	{
		Text: "레몬에이드(얼음 추가) 1잔, 아이스티(얼음 빼기) 1잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "레몬에이드", Quantity: 1, Option: "ICE Only, 얼음 추가"},
			{Name: "아이스티", Quantity: 1, Option: "ICE Only, 얼음 빼기"},
		},
	},
	{
		Text: "아이스 초코라떼 1잔과 치즈 케이크 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "초코라떼", Quantity: 1, Option: "ICE, 샷 추가"},
			{Name: "치즈 케이크", Quantity: 1, Option: "기본"},
		},
	},
	{
		Text: "따뜻한 카페모카 1잔, 아이스 아메리카노(얼음 추가) 1잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "카페모카", Quantity: 1, Option: "HOT"},
			{Name: "아메리카노", Quantity: 1, Option: "ICE, 얼음 추가"},
		},
	},
	{
		Text: "아이스 아메리카노(샷 추가, 얼음 적게) 1잔, 따뜻한 아메리카노(샷추가) 1잔을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "아메리카노", Quantity: 1, Option: "ICE, 샷 추가, 얼음 적게"},
			{Name: "아메리카노", Quantity: 1, Option: "HOT, 샷 추가"},
		},
	},
	{
		Text: "따뜻한 카페라떼 1잔, 치즈 케이크 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "카페라떼", Quantity: 1, Option: "HOT"},
			{Name: "치즈 케이크", Quantity: 1, Option: "기본"},
		},
	},
	{
		Text: "레몬에이드 1잔, 초코무스 케이크 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "레몬에이드", Quantity: 1, Option: "ICE Only"},
			{Name: "초코무스 케이크", Quantity: 1, Option: "기본"},
		},
	},
}

var gukbapSizeGroup = domain.ModifierGroup{
	Name: "사이즈",
	Modifiers: []domain.Modifier{
		{Name: "보통"},
		{Name: "특 (+1,000원)", PriceDelta: 1000},
	},
}

var restaurantItems = []domain.Item{
	{ID: "r1", Name: "돼지국밥", Category: "국밥류", Price: 9000, Groups: []domain.ModifierGroup{gukbapSizeGroup}},
	{ID: "r2", Name: "순대국밥", Category: "국밥류", Price: 9000, Groups: []domain.ModifierGroup{gukbapSizeGroup}},
	{ID: "r3", Name: "뼈해장국", Category: "국밥류", Price: 10000},
	{ID: "r4", Name: "육개장", Category: "국밥류", Price: 11000},
	{ID: "r5", Name: "뚝배기불고기", Category: "국밥류", Price: 12000},
	{ID: "r11", Name: "순대 모듬", Category: "사이드", Price: 15000},
	{ID: "r12", Name: "수육 (小)", Category: "사이드", Price: 15000},
	{ID: "r13", Name: "수육 (中)", Category: "사이드", Price: 20000},
	{ID: "r14", Name: "수육 (大)", Category: "사이드", Price: 25000},
	{ID: "r15", Name: "모듬", Category: "사이드", Price: 20000},
	{ID: "r16", Name: "김치", Category: "사이드", Price: 3000},
	{ID: "r21", Name: "소주", Category: "음료", Price: 4000},
	{ID: "r22", Name: "맥주", Category: "음료", Price: 4500},
	{ID: "r23", Name: "콜라", Category: "음료", Price: 2000},
	{ID: "r24", Name: "사이다", Category: "음료", Price: 2000},
	{ID: "r25", Name: "탄산수", Category: "음료", Price: 1500},
}

var restaurantMissions = []domain.CartMission{
	{
		Text: "돼지국밥 2개, 수육 (小) 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "돼지국밥", Quantity: 2},
			{Name: "수육 (小)", Quantity: 1},
		},
	},
	{
		Text: "순대국밥 1개, 소주 2병을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "순대국밥", Quantity: 1},
			{Name: "소주", Quantity: 2},
		},
	},
	{
		Text: "뼈해장국 1개, 순대 모듬 1개, 맥주 1병을 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "뼈해장국", Quantity: 1},
			{Name: "순대 모듬", Quantity: 1},
			{Name: "맥주", Quantity: 1},
		},
	},
	{
		Text: "육개장 2개, 김치 1개를 주문해보세요",
		Required: []domain.RequiredItem{
			{Name: "육개장", Quantity: 2},
			{Name: "김치", Quantity: 1},
		},
	},
}

// Cinema snack stand, used by the SNACK branch of the booking flow.
var snackItems = []domain.Item{
	{ID: "sn1", Name: "팝콘(S)", Category: "스낵", Price: 4000},
	{ID: "sn2", Name: "팝콘(M)", Category: "스낵", Price: 5500},
	{ID: "sn3", Name: "팝콘(L)", Category: "스낵", Price: 7000},
	{ID: "sn4", Name: "나쵸", Category: "스낵", Price: 5000},
	{ID: "sn5", Name: "핫도그", Category: "스낵", Price: 4500},
	{ID: "dr1", Name: "콜라(S)", Category: "음료", Price: 2500},
	{ID: "dr2", Name: "콜라(M)", Category: "음료", Price: 3000},
	{ID: "dr3", Name: "제로콜라", Category: "음료", Price: 3000},
	{ID: "dr4", Name: "사이다", Category: "음료", Price: 3000},
	{ID: "st1", Name: "팝콘L+콜라M 2", Category: "세트", Price: 9900},
	{ID: "st2", Name: "팝콘M+콜라M", Category: "세트", Price: 7900},
	{ID: "st3", Name: "나쵸+콜라M", Category: "세트", Price: 6900},
}

var movies = []domain.Movie{
	{ID: "m1", Title: "인사이드 아웃 2", RunningTimeMin: 96, ShowTimes: []string{"10:30", "13:00", "15:40"}},
	{ID: "m2", Title: "범죄도시 4", RunningTimeMin: 109, ShowTimes: []string{"09:50", "12:20", "17:00"}},
	{ID: "m3", Title: "듄: 파트2", RunningTimeMin: 166, ShowTimes: []string{"11:10", "14:30", "18:50"}},
	{ID: "m4", Title: "웡카", RunningTimeMin: 116, ShowTimes: []string{"10:00", "12:30", "15:00"}},
	{ID: "m5", Title: "파묘", RunningTimeMin: 134, ShowTimes: []string{"11:00", "14:10", "17:20"}},
	{ID: "m6", Title: "스파이더맨", RunningTimeMin: 140, ShowTimes: []string{"13:30", "16:20", "19:10"}},
	{ID: "m7", Title: "엘리멘탈", RunningTimeMin: 109, ShowTimes: []string{"09:30", "11:50", "14:10"}},
	{ID: "m8", Title: "탑건: 매버릭", RunningTimeMin: 130, ShowTimes: []string{"12:40", "15:30", "18:20"}},
	{ID: "m9", Title: "오펜하이머", RunningTimeMin: 180, ShowTimes: []string{"10:10", "13:50", "17:30"}},
}

var theaters = []domain.Theater{
	{ID: "t1", Name: "1관 2D", Format: domain.Format2D, Rows: 10, Cols: 12, TotalSeats: 120, RemainingSeats: 80},
	{ID: "t2", Name: "2관 4DX", Format: domain.Format4DX, Rows: 8, Cols: 12, TotalSeats: 96, RemainingSeats: 86},
	{ID: "t3", Name: "3관 IMAX", Format: domain.FormatIMAX, Rows: 7, Cols: 12, TotalSeats: 84, RemainingSeats: 33},
}

var bookingMissions = []domain.BookingMission{
	{
		ID:        1,
		Text:      "10:30에 상영하는 '인사이드 아웃 2'를 1관(2D)에서 성인 2명으로 카드를 이용해 결제하세요.",
		MovieID:   "m1",
		Time:      "10:30",
		TheaterID: "t1",
		Adult:     2,
		Payment:   domain.PaymentCard,
	},
	{
		ID:        2,
		Text:      "12:20에 상영하는 '범죄도시 4'를 2관(4DX)에서 성인 1명, 아이 1명으로 QR코드를 이용해 결제하세요.",
		MovieID:   "m2",
		Time:      "12:20",
		TheaterID: "t2",
		Adult:     1,
		Child:     1,
		Payment:   domain.PaymentQR,
	},
	{
		ID:        3,
		Text:      "15:00에 상영하는 '웡카'를 3관(IMAX)에서 성인 3명으로 카드를 이용해 결제하세요.",
		MovieID:   "m4",
		Time:      "15:00",
		TheaterID: "t3",
		Adult:     3,
		Payment:   domain.PaymentCard,
	},
	{
		ID:        4,
		Text:      "11:00에 상영하는 '파묘'를 1관(2D)에서 우대 1명으로 QR코드를 이용해 결제하세요.",
		MovieID:   "m5",
		Time:      "11:00",
		TheaterID: "t1",
		Senior:    1,
		Payment:   domain.PaymentQR,
	},
}
