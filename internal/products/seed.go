package product

import "github.com/angelmondragon/mallkv/pkg/enums"

func ptr(v float64) *float64 { return &v }

// DefaultCatalog returns the catalog written on first run.
func DefaultCatalog() []Product {
	active := enums.ProductStatusActive
	return []Product{
		{ID: 1, Name: "时尚休闲外套", Price: 299, OriginalPrice: ptr(399), Image: "https://images.unsplash.com/photo-1551232864-3f0890e580d9?w=400&h=400&fit=crop", Category: "穿搭", Stock: 50, Status: active, Description: "时尚潮流，舒适休闲，适合各种场合穿搭的经典外套", Rating: ptr(4.6)},
		{ID: 2, Name: "经典牛仔裤", Price: 189, OriginalPrice: ptr(229), Image: "https://images.pexels.com/photos/6764708/pexels-photo-6764708.jpeg?w=400&h=400&fit=crop", Category: "穿搭", Stock: 80, Status: active, Rating: ptr(4.5)},
		{ID: 3, Name: "精选坚果礼盒", Price: 128, OriginalPrice: ptr(168), Image: "https://tse3-mm.cn.bing.net/th/id/OIP-C.ZBzEmqr90Au1zfiVvoR4mAHaHa?r=0&rs=1&pid=ImgDetMain", Category: "美食", Stock: 100, Status: active, Rating: ptr(4.8)},
		{ID: 4, Name: "有机蜂蜜", Price: 89, OriginalPrice: ptr(119), Image: "https://th.bing.com/th/id/R.55d70b5b73645555418e74a93cebfafd?rik=Cppq7jPW2CTX0g&riu=http%3a%2f%2fimg.11665.com%2fimg04_p%2fi4%2fT1MDlbXcFCXXcPUlk2_044815.jpg&ehk=aHbN094MC%2bO1HqSMnyP6BNQsyNoKdnhyAC9PxEzLz3g%3d&risl=&pid=ImgRaw&r=0?w=400&h=400&fit=crop", Category: "美食", Stock: 60, Status: active, Rating: ptr(4.7)},
		{ID: 5, Name: "北欧风桌椅", Price: 79, OriginalPrice: ptr(99), Image: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400&h=400&fit=crop", Category: "居家", Stock: 120, Status: active, Rating: ptr(4.4)},
		{ID: 6, Name: "智能台灯", Price: 199, OriginalPrice: ptr(259), Image: "https://cbu01.alicdn.com/img/ibank/2018/434/179/9167971434_44817320.jpg", Category: "居家", Stock: 45, Status: active, Rating: ptr(4.6)},
		{ID: 7, Name: "lamer护肤套装", Price: 149, OriginalPrice: ptr(199), Image: "https://imgservice.suning.cn/uimg1/b2c/image/5yTesIS1mYEkNY4YqsOkyQ.jpg", Category: "美妆", Stock: 80, Status: active, Description: "滋养肌肤，让您拥有水润光泽的完美肌肤", Rating: ptr(4.8)},
		{ID: 8, Name: "丝绒口红套装", Price: 219, OriginalPrice: ptr(279), Image: "https://cbu01.alicdn.com/img/ibank/O1CN01g0xuHp1j8sbjDvlMq_!!3586514504-0-cib.jpg", Category: "美妆", Stock: 90, Status: active, Rating: ptr(4.7)},
		{ID: 9, Name: "nike专业跑步鞋", Price: 399, OriginalPrice: ptr(499), Image: "https://pic4.zhimg.com/v2-51e8b7d397d8fc55bb0b262e2dcad682_r.jpg", Category: "运动", Stock: 70, Status: active, Rating: ptr(4.6)},
		{ID: 10, Name: "瑜伽垫套装", Price: 89, OriginalPrice: ptr(129), Image: "https://img.alicdn.com/bao/uploaded/TB1ZVALc5cKOu4jSZKbSuw19XXa.jpg", Category: "运动", Stock: 120, Status: active, Rating: ptr(4.5)},
		{ID: 11, Name: "攀山鼠户外登山包", Price: 329, OriginalPrice: ptr(429), Image: "https://th.bing.com/th/id/OIP.WpoukquHmo4gM9Bm9vsAbQHaHa?rs=1&pid=ImgDetMain", Category: "户外", Stock: 40, Status: active, Description: "这款攀山鼠户外登山包采用高强度防水面料，拥有多层收纳空间和人体工学背负系统，适合长途徒步、露营、旅行等多种户外场景，轻便耐用，容量充足，是户外爱好者的理想选择。", Rating: ptr(4.7)},
		{ID: 12, Name: "户外帐篷", Price: 589, OriginalPrice: ptr(699), Image: "https://cbu01.alicdn.com/img/ibank/2018/147/869/9223968741_2090806006.jpg", Category: "户外", Stock: 25, Status: active, Description: "户外双层防雨帐篷，采用高密度防水面料和加固支架设计，抗风防雨，通风透气，搭建便捷，适合三至四人家庭或朋友露营使用，带来舒适的户外居住体验。", Rating: ptr(4.8)},
		{ID: 13, Name: "无线蓝牙耳机", Price: 299, OriginalPrice: ptr(399), Image: "https://images.unsplash.com/photo-1606841837239-c5a1a4a07af7?w=400&h=400&fit=crop", Category: "数码", Stock: 100, Status: active, Description: "高品质音效，长续航，智能降噪，让您享受极致的音乐体验。这款无线蓝牙耳机支持多设备连接，佩戴舒适，适合运动、通勤、学习等多种场景，带来沉浸式音乐享受。", Rating: ptr(4.6)},
		{ID: 14, Name: "智能手表", Price: 899, OriginalPrice: ptr(1199), Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop", Category: "数码", Stock: 60, Status: active, Description: "这款智能手表集成心率监测、运动追踪、睡眠分析、消息提醒等多种功能，支持防水和蓝牙通话，搭配高清触控屏幕和多种表盘选择，是健康生活与时尚穿搭的完美结合。", Rating: ptr(4.7)},
		{ID: 15, Name: "超清便携投影仪家庭影院无线投屏", Price: 1299, OriginalPrice: ptr(1699), Image: "https://th.bing.com/th/id/R.905d3dbc33d0d9145c6b2f026e705ffc?rik=dMhZBEn%2br%2fC1rg&riu=http%3a%2f%2fwww.happybate.com%2fupload%2froom%2f1497004673.jpg&ehk=LgKDl1p2HVp0vV28Ur%2bKjjS1cfmGeRsR7jdqhf6wccM%3d&risl=&pid=ImgRaw&r=0", Category: "数码", Stock: 30, Status: active, Description: "这款超清便携投影仪支持无线投屏，高清画质，内置音响，适合家庭影院、会议演示和户外露营，操作简单，携带方便。", Rating: ptr(4.9)},
		{ID: 16, Name: "多功能电动牙刷智能清洁", Price: 199, OriginalPrice: ptr(299), Image: "https://th.bing.com/th/id/OIP.DkNE1Or5bmOjLeuKV4sBmQHaE0?rs=1&pid=ImgDetMain", Category: "数码", Stock: 80, Status: active, Description: "智能定时提醒，强力清洁，长续航，IPX7级全身防水，呵护口腔健康，适合全家使用。", Rating: ptr(4.7)},
		{ID: 17, Name: "全自动扫地机器人智能规划吸尘拖地一体", Price: 899, OriginalPrice: ptr(1299), Image: "https://x0.ifengimg.com/cmpp/fck/2019_36/bc6ed7eeb9fcb2b_w2198_h1466.jpg", Category: "居家", Stock: 40, Status: active, Description: "全自动智能扫地机器人，支持多种清扫模式，自动回充，强力吸尘，湿拖一体，解放双手，居家必备。", Rating: ptr(4.8)},
		{ID: 18, Name: "北欧风格落地灯简约现代客厅卧室灯具", Price: 299, OriginalPrice: ptr(399), Image: "https://th.bing.com/th/id/OIP.IuwszYg88v0ncy1CVS7-4AHaKt?rs=1&pid=ImgDetMain", Category: "居家", Stock: 60, Status: active, Description: "北欧极简风格，柔和光线，适合客厅、卧室、书房等多种场景，提升家居格调。", Rating: ptr(4.5)},
		{ID: 19, Name: "补水保湿面膜贴深层滋养修护肌肤", Price: 59, OriginalPrice: ptr(99), Image: "https://th.bing.com/th/id/R.9a29658d059b7d2925468baa3fa68d5d?rik=8ufMO7k3hp%2bFIg&riu=http%3a%2f%2f5b0988e595225.cdn.sohucs.com%2fimages%2f20170903%2f9d91254695964b0db4875fe400068f6f.jpeg&ehk=HVhnpYsJ5OhVPgpf5%2bGa6glEJdIOnPq7L5PMVeU5FyU%3d&risl=&pid=ImgRaw&r=0", Category: "美妆", Stock: 200, Status: active, Description: "深层补水，持久保湿，修护肌肤屏障，适合各种肤质，令肌肤水润透亮。", Rating: ptr(4.9)},
		{ID: 20, Name: "多色眼影盘哑光珠光防水不晕染", Price: 129, OriginalPrice: ptr(169), Image: "https://img.alicdn.com/i3/2208626100237/O1CN01pq8X9I1DcaXRufix9_!!2208626100237.jpg", Category: "美妆", Stock: 120, Status: active, Description: "多色可选，粉质细腻，易晕染，持久不脱妆，适合各种妆容需求。", Rating: ptr(4.8)},
	}
}
